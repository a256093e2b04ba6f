package models

import (
	"github.com/Egham-7/models-helper/internal/utils"
)

// ComparisonEntry is the outcome of one model in a comparison: response text or a formatted error
type ComparisonEntry struct {
	Model  string
	Output string
}

// ComparisonResult maps model ids to outcomes, preserving the order models were requested in.
// It serializes as a JSON object whose keys follow that order.
type ComparisonResult struct {
	entries []ComparisonEntry
	index   map[string]int
}

// NewComparisonResult creates an empty result sized for n models
func NewComparisonResult(n int) *ComparisonResult {
	return &ComparisonResult{
		entries: make([]ComparisonEntry, 0, n),
		index:   make(map[string]int, n),
	}
}

// Set stores the outcome for a model, replacing any earlier outcome for the same id
func (r *ComparisonResult) Set(model, output string) {
	if i, ok := r.index[model]; ok {
		r.entries[i].Output = output
		return
	}
	r.index[model] = len(r.entries)
	r.entries = append(r.entries, ComparisonEntry{Model: model, Output: output})
}

// Get returns the outcome stored for a model
func (r *ComparisonResult) Get(model string) (string, bool) {
	i, ok := r.index[model]
	if !ok {
		return "", false
	}
	return r.entries[i].Output, true
}

// Len returns the number of models in the result
func (r *ComparisonResult) Len() int {
	return len(r.entries)
}

// Models returns the model ids in request order
func (r *ComparisonResult) Models() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.Model
	}
	return ids
}

// MarshalJSON implements json.Marshaler
func (r *ComparisonResult) MarshalJSON() ([]byte, error) {
	buf := utils.Get()
	defer utils.Put(buf)

	buf.WriteString("{")
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := utils.EncodeJSON(e.Model, "")
		if err != nil {
			return nil, err
		}
		value, err := utils.EncodeJSON(e.Output, "")
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":")
		buf.Write(value)
	}
	buf.WriteString("}")

	return utils.Detach(buf), nil
}

// CompareModelsResponse is the compare_models tool payload
type CompareModelsResponse struct {
	Results *ComparisonResult `json:"results"`
	Summary ComparisonSummary `json:"summary"`
}

// ComparisonSummary describes which models were compared for which prompt
type ComparisonSummary struct {
	ModelsCompared []string `json:"models_compared"`
	Prompt         string   `json:"prompt"`
}

// CompareModelsError is the compare_models payload when no requested model is in the catalog
type CompareModelsError struct {
	Error           string   `json:"error"`
	AvailableModels []string `json:"available_models,omitzero"`
	ModelsCompared  []string `json:"models_compared,omitzero"`
}

// ListModelsResponse is the list_available_models payload without metadata
type ListModelsResponse struct {
	ModelIDs []string `json:"model_ids"`
	Count    int      `json:"count"`
}

// ListModelsMetadataResponse is the list_available_models payload with include_metadata set
type ListModelsMetadataResponse struct {
	Models     []ModelDescriptor `json:"models"`
	Count      int               `json:"count"`
	Publishers []string          `json:"publishers"`
}
