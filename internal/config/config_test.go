package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Egham-7/models-helper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, models.TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL())
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout())
	assert.Equal(t, 1, cfg.Comparison.MaxConcurrency)
	assert.Equal(t, []string{"gpt-4", "claude-3"}, cfg.Comparison.DefaultModels)
	assert.False(t, cfg.HasCredential())
}

func TestLoadFromFile_SubstitutesEnvVars(t *testing.T) {
	t.Setenv("TEST_MODELS_TOKEN", "secret-token")
	path := writeConfig(t, "config.yaml", `
server:
  transport: HTTP
  port: "${TEST_MODELS_PORT:-9090}"
  log_level: debug
comparison:
  api_key: ${TEST_MODELS_TOKEN}
  max_concurrency: 4
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, models.TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.GetNormalizedLogLevel())
	assert.Equal(t, "secret-token", cfg.Comparison.APIKey)
	assert.Equal(t, 4, cfg.Comparison.MaxConcurrency)

	// untouched sections keep their defaults
	assert.Equal(t, DefaultCatalogEndpoint, cfg.Catalog.Endpoint)
	assert.Equal(t, DefaultComparisonBaseURL, cfg.Comparison.BaseURL)
	assert.Equal(t, "Model Helper", cfg.Server.Name)
}

func TestLoadFromFile_RejectsNonYAML(t *testing.T) {
	_, err := LoadFromFile("config.json")
	assert.ErrorContains(t, err, "only .yaml and .yml")
}

func TestLoadFromFile_ResolvesParentRelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models-helper.yaml"), []byte("server:\n  log_level: warn\n"), 0o600))
	sub := filepath.Join(dir, "bin")
	require.NoError(t, os.Mkdir(sub, 0o700))
	t.Chdir(sub)

	cfg, err := LoadFromFile("../models-helper.yaml")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "broken.yaml", "server: [unterminated")

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to parse YAML config")
}

func TestLoad_MissingFileUsesDefaultsAndEnvCredential(t *testing.T) {
	t.Setenv(CredentialEnvVar, "env-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Comparison.APIKey)
	assert.True(t, cfg.HasCredential())
	assert.Equal(t, models.TransportStdio, cfg.Server.Transport)
}

func TestLoad_FileCredentialWins(t *testing.T) {
	t.Setenv(CredentialEnvVar, "env-token")
	path := writeConfig(t, "config.yml", "comparison:\n  api_key: file-token\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Comparison.APIKey)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Transport = "websocket"
	cfg.Catalog.CacheTTLSeconds = -1
	cfg.Comparison.MaxConcurrency = 0

	err := cfg.Validate()
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorTypeConfiguration, appErr.Type)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), "invalid configuration: ")
	assert.Contains(t, err.Error(), "websocket")
}

func TestValidate_HTTPRequiresPort(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Transport = models.TransportHTTP
	cfg.Server.Port = ""

	assert.Error(t, cfg.Validate())
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("TEST_SUBST_SET", "value")

	assert.Equal(t, "a: value", substituteEnvVars("a: ${TEST_SUBST_SET}"))
	assert.Equal(t, "a: fallback", substituteEnvVars("a: ${TEST_SUBST_UNSET_VAR:-fallback}"))
	assert.Equal(t, "a: ", substituteEnvVars("a: ${TEST_SUBST_UNSET_VAR}"))
}
