package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "gpt-4o-mini", cfg.DefaultModel)
	assert.Empty(t, cfg.DataDir)
	assert.False(t, cfg.Watch)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.ListenAddr)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9999"
log_level: debug
log_format: json
data_dir: /var/lib/promptcoach
watch: true
default_model: gpt-4o
history:
  enabled: true
  path: /tmp/history.db
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/var/lib/promptcoach", cfg.DataDir)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "gpt-4o", cfg.DefaultModel)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/history.db", cfg.History.Path)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvListenAddr, ":7070")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvDataDir, "/data")
	t.Setenv(EnvWatch, "true")
	t.Setenv(EnvHistoryPath, "/data/h.db")
	t.Setenv(EnvDefaultModel, "o3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.True(t, cfg.Watch)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/data/h.db", cfg.History.Path)
	assert.Equal(t, "o3", cfg.DefaultModel)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0o644))
	t.Setenv(EnvListenAddr, ":6060")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.ListenAddr)
}

func TestLoad_HistoryEnabledWithoutPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  enabled: true\n  path: \"\"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
