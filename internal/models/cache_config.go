package models

// CatalogConfig holds configuration for the model catalog fetcher and its cache
type CatalogConfig struct {
	Endpoint        string `json:"endpoint,omitzero" yaml:"endpoint"`
	TimeoutMs       int    `json:"timeout_ms,omitzero" yaml:"timeout_ms"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds,omitzero" yaml:"cache_ttl_seconds"`
}
