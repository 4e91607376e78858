package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transfer-payload-converter/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMainConfig(t *testing.T) {
	t.Run("missing optional file uses defaults", func(t *testing.T) {
		cfg, err := config.LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
		require.NoError(t, err)

		assert.Equal(t, config.Default(), cfg)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, []string{"*.tsv", "*.txt"}, cfg.InputPatterns)
		assert.Equal(t, 4, cfg.MaxConcurrency)
		assert.False(t, cfg.ArchiveDateSubdirs)
		assert.Equal(t, "{original}_{status}_{uuid}.json", cfg.OutputNameFormat)
	})

	t.Run("missing required file fails", func(t *testing.T) {
		_, err := config.LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("file values", func(t *testing.T) {
		path := writeConfig(t, `
catalog_file: ./ops.xlsx
output_dir: ./payloads
input_patterns: ["*.list"]
archive_on_success: true
archive_date_subdirs: true
max_concurrency: 2
log_level: DEBUG
server:
  addr: "127.0.0.1:9000"
  read_timeout: 3s
`)
		cfg, err := config.LoadMainConfig(path, true)
		require.NoError(t, err)

		assert.Equal(t, "./ops.xlsx", cfg.CatalogFile)
		assert.Equal(t, "./payloads", cfg.OutputDir)
		assert.Equal(t, "./input", cfg.InputDir)
		assert.Equal(t, []string{"*.list"}, cfg.InputPatterns)
		assert.True(t, cfg.ArchiveOnSuccess)
		assert.True(t, cfg.ArchiveDateSubdirs)
		assert.Equal(t, 2, cfg.MaxConcurrency)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
		assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "server:\n  addr: \":9000\"\n")
		t.Setenv("PAYLOAD_SERVER__ADDR", ":7000")
		t.Setenv("PAYLOAD_CATALOG_FILE", "/etc/catalog.yaml")

		cfg, err := config.LoadMainConfig(path, true)
		require.NoError(t, err)

		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, "/etc/catalog.yaml", cfg.CatalogFile)
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := writeConfig(t, "log_level: loud\n")

		_, err := config.LoadMainConfig(path, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [\n")

		_, err := config.LoadMainConfig(path, true)
		assert.Error(t, err)
	})
}
