package comparison

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Egham-7/models-helper/internal/config"
	"github.com/Egham-7/models-helper/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/openai/openai-go/v2"
	openaiOption "github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"golang.org/x/sync/errgroup"
)

// Fixed sampling parameters sent with every comparison request
const (
	temperature = 0.7
	topP        = 1.0
	maxTokens   = 1000
)

const noChoicesOutput = "Error: no choices returned"

// Dispatcher sends one prompt to several models and collects their answers
type Dispatcher struct {
	client         *openai.Client
	maxConcurrency int
}

// NewDispatcher creates a dispatcher for the configured chat completions endpoint.
// Without a credential the dispatcher is still usable but every Compare fails with
// models.ErrMissingCredential.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	d := &Dispatcher{maxConcurrency: max(cfg.Comparison.MaxConcurrency, 1)}
	if !cfg.HasCredential() {
		fiberlog.Warnf("[COMPARE] %s is not set, model comparison is disabled", config.CredentialEnvVar)
		return d
	}

	d.client = buildClient(cfg.Comparison, cfg.ComparisonTimeout())
	return d
}

func buildClient(cc models.ComparisonConfig, timeout time.Duration) *openai.Client {
	opts := []openaiOption.RequestOption{
		openaiOption.WithAPIKey(cc.APIKey),
		openaiOption.WithHeader("api-key", cc.APIKey),
		openaiOption.WithMaxRetries(0),
	}

	if cc.BaseURL != "" {
		opts = append(opts, openaiOption.WithBaseURL(cc.BaseURL))
	}

	if timeout > 0 {
		opts = append(opts, openaiOption.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	client := openai.NewClient(opts...)
	return &client
}

// Compare sends prompt to every model in modelIDs. A failing model never fails the
// comparison: its entry holds an "Error: ..." string instead of a response.
// Duplicate ids are collapsed to their first occurrence and the result keeps input order.
func (d *Dispatcher) Compare(ctx context.Context, prompt string, modelIDs []string) (*models.ComparisonResult, error) {
	if d.client == nil {
		return nil, models.ErrMissingCredential
	}

	ids := UniqueIDs(modelIDs)
	outputs := make([]string, len(ids))
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(d.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			outputs[i] = d.complete(ctx, prompt, id)
			return nil
		})
	}
	_ = g.Wait()

	result := models.NewComparisonResult(len(ids))
	for i, id := range ids {
		result.Set(id, outputs[i])
	}

	fiberlog.Infof("[COMPARE] Compared %d models in %v", len(ids), time.Since(start))
	return result, nil
}

func (d *Dispatcher) complete(ctx context.Context, prompt, model string) string {
	resp, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		TopP:        openai.Float(topP),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		output := FormatError(err)
		fiberlog.Warnf("[COMPARE] %v", models.NewProviderError(model, output, err))
		return output
	}

	if len(resp.Choices) == 0 {
		fiberlog.Warnf("[COMPARE] %s returned no choices", model)
		return noChoicesOutput
	}

	fiberlog.Debugf("[COMPARE] %s usage: prompt=%d completion=%d total=%d",
		model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content
}

// FormatError renders a failed completion as the text stored in a comparison result.
// API errors carry the HTTP status, transport errors only their message.
func FormatError(err error) string {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return fmt.Sprintf("Error: %d %s", apiErr.StatusCode, msg)
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// UniqueIDs drops empty and repeated ids, keeping the first occurrence of each
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
