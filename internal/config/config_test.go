package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "catalyst.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.CORSOrigins)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.LogConsole)
}

func TestLoadFileWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalyst.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
database_url: postgres://localhost:5432/catalyst
log_level: DEBUG
diagram:
  provider: anthropic
  model: claude-test
`), 0644))

	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ANTHROPIC_API_KEY", "secret")
	t.Setenv("NVIDIA_API_KEY", "other")
	t.Setenv("CATALYST_LOG_CONSOLE", "false")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "postgres://localhost:5432/catalyst", cfg.DatabaseURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.False(t, cfg.LogConsole)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "anthropic", cfg.Diagram.Provider)
	assert.Equal(t, "claude-test", cfg.Diagram.Model)
	assert.Equal(t, "secret", cfg.Diagram.APIKey)
}

func TestDefaultProviderReadsNvidiaKey(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY", "nv-key")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "nv-key", cfg.Diagram.APIKey)
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalyst.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
