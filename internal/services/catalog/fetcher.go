package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Egham-7/models-helper/internal/config"
	"github.com/Egham-7/models-helper/internal/models"
	"github.com/Egham-7/models-helper/internal/services"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

const defaultPublisher = "Unknown"

var errMissingSummaries = errors.New("invalid response format from models API: missing summaries")

// Result is the outcome of one catalog fetch
type Result struct {
	Models []models.ModelDescriptor
	// Fallback is set when Models came from the hardcoded list instead of the API
	Fallback bool
}

// Fetcher queries the remote model catalog
type Fetcher struct {
	client  *services.Client
	timeout time.Duration
}

type catalogFilter struct {
	Field    string   `json:"field"`
	Values   []string `json:"values"`
	Operator string   `json:"operator"`
}

type catalogOrder struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type catalogRequest struct {
	Filters []catalogFilter `json:"filters"`
	Order   []catalogOrder  `json:"order"`
}

type catalogResponse struct {
	Summaries []json.RawMessage `json:"summaries"`
}

// catalogRecord is one raw summary. Every field is optional and untrusted.
type catalogRecord map[string]json.RawMessage

// field decodes rec[key] as T. A missing field, or one holding an unexpected
// type, reads as the zero value without affecting the rest of the record.
func field[T any](rec catalogRecord, key string) T {
	var v T
	raw, ok := rec[key]
	if !ok {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		fiberlog.Debugf("[CATALOG] Ignoring field %q: %v", key, err)
		var zero T
		return zero
	}
	return v
}

// freeLatestQuery selects models flagged free-to-try and labeled "latest", by display name
var freeLatestQuery = catalogRequest{
	Filters: []catalogFilter{
		{Field: "freePlayground", Values: []string{"true"}, Operator: "eq"},
		{Field: "labels", Values: []string{"latest"}, Operator: "eq"},
	},
	Order: []catalogOrder{
		{Field: "displayName", Direction: "Asc"},
	},
}

// NewFetcher creates a fetcher for the configured catalog endpoint
func NewFetcher(cfg *config.Config) *Fetcher {
	clientCfg := services.DefaultClientConfig(cfg.Catalog.Endpoint)
	if timeout := cfg.CatalogTimeout(); timeout > 0 {
		clientCfg.Timeout = timeout
	}
	return NewFetcherWithClient(services.NewClientWithConfig(clientCfg), cfg.CatalogTimeout())
}

// NewFetcherWithClient creates a fetcher using an existing API client
func NewFetcherWithClient(client *services.Client, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: timeout,
	}
}

// Close releases idle catalog connections
func (f *Fetcher) Close() {
	f.client.Close()
}

// FetchCatalog makes a single catalog request. It never fails: any transport error
// or malformed response yields the fallback list.
func (f *Fetcher) FetchCatalog(ctx context.Context) Result {
	start := time.Now()

	descriptors, err := f.fetch(ctx)
	if err != nil {
		fiberlog.Warnf("[CATALOG] Error fetching models, using %d fallback models: %v", len(fallbackModels), err)
		return Result{Models: FallbackModels(), Fallback: true}
	}

	fiberlog.Infof("[CATALOG] Fetched %d models in %v", len(descriptors), time.Since(start))
	return Result{Models: descriptors}
}

func (f *Fetcher) fetch(ctx context.Context) ([]models.ModelDescriptor, error) {
	var resp catalogResponse
	opts := &services.RequestOptions{Timeout: f.timeout}
	if err := f.client.Post(ctx, "", freeLatestQuery, &resp, opts); err != nil {
		return nil, models.NewUpstreamError("catalog request failed", err)
	}

	if resp.Summaries == nil {
		return nil, models.NewUpstreamError("malformed catalog response", errMissingSummaries)
	}

	descriptors := make([]models.ModelDescriptor, 0, len(resp.Summaries))
	seen := make(map[string]struct{}, len(resp.Summaries))
	for i, raw := range resp.Summaries {
		var rec catalogRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			fiberlog.Warnf("[CATALOG] Skipping summary %d, not an object: %v", i, err)
			continue
		}

		d := toDescriptor(rec)
		if d.ID == "" {
			fiberlog.Debugf("[CATALOG] Skipping summary %d without a name", i)
			continue
		}
		if _, dup := seen[d.ID]; dup {
			fiberlog.Debugf("[CATALOG] Skipping duplicate model %s", d.ID)
			continue
		}
		seen[d.ID] = struct{}{}
		descriptors = append(descriptors, d)
	}

	if len(descriptors) == 0 {
		return nil, models.NewUpstreamError("catalog returned no usable models", nil)
	}

	return descriptors, nil
}

func toDescriptor(rec catalogRecord) models.ModelDescriptor {
	name := field[string](rec, "name")
	limits := field[catalogRecord](rec, "modelLimits")

	d := models.ModelDescriptor{
		ID:                 name,
		DisplayName:        firstNonEmpty(field[string](rec, "displayName"), name),
		Publisher:          firstNonEmpty(field[string](rec, "publisher"), defaultPublisher),
		Summary:            field[string](rec, "summary"),
		Version:            field[string](rec, "version"),
		AssetID:            field[string](rec, "assetId"),
		Popularity:         field[float64](rec, "popularity"),
		Keywords:           nonNil(field[[]string](rec, "keywords")),
		SupportedLanguages: nonNil(field[[]string](limits, "supportedLanguages")),
	}

	textLimits := field[catalogRecord](limits, "textLimits")
	if window := field[float64](textLimits, "inputContextWindow"); window > 0 {
		d.ContextWindow = int(window)
	}

	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
