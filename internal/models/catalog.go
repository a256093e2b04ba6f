package models

import "time"

// ModelDescriptor describes one model offered by the catalog.
// JSON names match what MCP clients of the original helper already consume.
type ModelDescriptor struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"displayName"`
	Publisher          string   `json:"publisher"`
	Summary            string   `json:"summary"`
	ContextWindow      int      `json:"context_window"`
	AssetID            string   `json:"assetId,omitzero"`
	Version            string   `json:"version,omitzero"`
	SupportedLanguages []string `json:"supported_languages,omitzero"`
	Popularity         float64  `json:"popularity,omitzero"`
	Keywords           []string `json:"keywords,omitzero"`
}

// CatalogStatus is a point-in-time view of the model cache
type CatalogStatus struct {
	FetchedAt time.Time     `json:"fetched_at,omitzero"`
	Age       time.Duration `json:"age_ns,omitzero"`
	Fresh     bool          `json:"fresh"`
	Count     int           `json:"count"`
}

// ModelIDs returns the identifiers of descriptors in order
func ModelIDs(descriptors []ModelDescriptor) []string {
	ids := make([]string, len(descriptors))
	for i, d := range descriptors {
		ids[i] = d.ID
	}
	return ids
}
