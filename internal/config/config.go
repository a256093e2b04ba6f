package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Egham-7/models-helper/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// CredentialEnvVar names the environment variable holding the chat completions API key
	CredentialEnvVar = "GITHUB_TOKEN"

	DefaultCatalogEndpoint    = "https://api.catalog.azureml.ms/asset-gallery/v1.0/models"
	DefaultComparisonBaseURL  = "https://models.inference.ai.azure.com/v1"
	defaultCatalogTimeoutMs   = 10_000
	defaultCacheTTLSeconds    = 600
	defaultComparisonTimeout  = 60_000
	defaultComparisonParallel = 1
)

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::(-[^}]*))?\}`)

// Config represents the complete application configuration
type Config struct {
	Server     models.ServerConfig     `yaml:"server"`
	Catalog    models.CatalogConfig    `yaml:"catalog"`
	Comparison models.ComparisonConfig `yaml:"comparison"`
}

// Defaults returns the configuration used when no config file is present
func Defaults() *Config {
	return &Config{
		Server: models.ServerConfig{
			Name:        "Model Helper",
			Version:     "1.0.0",
			Transport:   models.TransportStdio,
			Port:        "8080",
			Environment: "development",
			LogLevel:    "info",
		},
		Catalog: models.CatalogConfig{
			Endpoint:        DefaultCatalogEndpoint,
			TimeoutMs:       defaultCatalogTimeoutMs,
			CacheTTLSeconds: defaultCacheTTLSeconds,
		},
		Comparison: models.ComparisonConfig{
			BaseURL:        DefaultComparisonBaseURL,
			TimeoutMs:      defaultComparisonTimeout,
			MaxConcurrency: defaultComparisonParallel,
			DefaultModels:  []string{"gpt-4", "claude-3"},
		},
	}
}

// Load reads configPath when it exists and falls back to Defaults otherwise.
// The credential is taken from the environment when the file does not set one.
func Load(configPath string) (*Config, error) {
	cfg, err := LoadFromFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		fiberlog.Infof("Config file %s not found, using defaults", configPath)
		cfg = Defaults()
	} else if err != nil {
		return nil, err
	}

	if cfg.Comparison.APIKey == "" {
		cfg.Comparison.APIKey = os.Getenv(CredentialEnvVar)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file with environment variable substitution.
// Fields absent from the file keep their default values.
func LoadFromFile(configPath string) (*Config, error) {
	// Hosts often launch the binary from an unrelated directory, so relative
	// paths (including ../) are resolved rather than rejected.
	cleanPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path %s: %w", configPath, err)
	}

	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("invalid config file: only .yaml and .yml files are allowed")
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 - operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	content := substituteEnvVars(string(data))

	config := Defaults()
	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.Server.Transport = strings.ToLower(strings.TrimSpace(config.Server.Transport))

	return config, nil
}

// LoadEnvFiles loads environment variables from .env files in order of precedence
// Loads files in the order provided (first has highest priority)
func LoadEnvFiles(envFiles []string) {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err == nil {
				fiberlog.Infof("Loaded environment variables from %s", envFile)
			}
		}
	}
}

// substituteEnvVars replaces ${VAR_NAME} and ${VAR_NAME:-default} patterns with environment variables
func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultValue := ""

		if len(submatches) > 2 && submatches[2] != "" {
			defaultValue = strings.TrimPrefix(submatches[2], "-")
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// CatalogTimeout returns the timeout applied to one catalog request
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutMs) * time.Millisecond
}

// CacheTTL returns the validity window of a catalog snapshot
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Catalog.CacheTTLSeconds) * time.Second
}

// ComparisonTimeout returns the timeout applied to one chat completion request
func (c *Config) ComparisonTimeout() time.Duration {
	return time.Duration(c.Comparison.TimeoutMs) * time.Millisecond
}

// HasCredential reports whether a chat completions API key is configured
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.Comparison.APIKey) != ""
}

// GetNormalizedLogLevel returns the log level in lowercase for consistent comparison
func (c *Config) GetNormalizedLogLevel() string {
	return strings.ToLower(c.Server.LogLevel)
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate checks the configuration and reports every problem found.
// The returned *models.AppError wraps a *ValidationError listing them.
func (c *Config) Validate() error {
	var problems []string

	switch c.Server.Transport {
	case models.TransportStdio:
	case models.TransportHTTP:
		if c.Server.Port == "" {
			problems = append(problems, "server.port is required for the http transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("server.transport %q is not one of stdio, http", c.Server.Transport))
	}

	if c.Catalog.Endpoint == "" {
		problems = append(problems, "catalog.endpoint is required")
	}
	if c.Catalog.TimeoutMs < 0 {
		problems = append(problems, "catalog.timeout_ms must not be negative")
	}
	if c.Catalog.CacheTTLSeconds < 0 {
		problems = append(problems, "catalog.cache_ttl_seconds must not be negative")
	}
	if c.Comparison.BaseURL == "" {
		problems = append(problems, "comparison.base_url is required")
	}
	if c.Comparison.TimeoutMs < 0 {
		problems = append(problems, "comparison.timeout_ms must not be negative")
	}
	if c.Comparison.MaxConcurrency <= 0 {
		problems = append(problems, "comparison.max_concurrency must be positive")
	}

	if len(problems) > 0 {
		return models.NewConfigurationError("invalid configuration", &ValidationError{Problems: problems})
	}

	return nil
}

// ValidationError represents configuration validation errors
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
