package models

// Transport names accepted by ServerConfig.Transport
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Name        string `json:"name,omitzero" yaml:"name"`
	Version     string `json:"version,omitzero" yaml:"version"`
	Transport   string `json:"transport,omitzero" yaml:"transport"` // "stdio" or "http"
	Port        string `json:"port,omitzero" yaml:"port"`           // Only used by the http transport
	Environment string `json:"environment,omitzero" yaml:"environment"`
	LogLevel    string `json:"log_level,omitzero" yaml:"log_level"`
}
