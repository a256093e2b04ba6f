package models

// ComparisonConfig holds configuration for the chat completions provider used by compare_models
type ComparisonConfig struct {
	BaseURL        string   `yaml:"base_url" json:"base_url,omitzero"`
	APIKey         string   `yaml:"api_key" json:"-"`
	TimeoutMs      int      `yaml:"timeout_ms" json:"timeout_ms,omitzero"`
	MaxConcurrency int      `yaml:"max_concurrency" json:"max_concurrency,omitzero"` // Outbound requests in flight per comparison
	DefaultModels  []string `yaml:"default_models" json:"default_models,omitzero"`   // Used when compare_models omits "models"
}
