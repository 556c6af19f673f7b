package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 600*time.Millisecond, cfg.Collector.RequestDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.Collector.SubRequestPause)
	assert.Equal(t, 100, cfg.Collector.CheckpointInterval)
	assert.Equal(t, "japanese", cfg.Steam.Language)
	assert.Equal(t, "./data", cfg.Output.Directory)
	assert.Equal(t, "steam_random", cfg.Output.FilePrefix)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
steam:
  api_key: filekey
  language: english
collector:
  request_delay: 1s
  checkpoint_interval: 25
output:
  directory: /tmp/steamout
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "filekey", cfg.Steam.APIKey)
	assert.Equal(t, "english", cfg.Steam.Language)
	assert.Equal(t, time.Second, cfg.Collector.RequestDelay)
	assert.Equal(t, 25, cfg.Collector.CheckpointInterval)
	assert.Equal(t, "/tmp/steamout", cfg.Output.Directory)
	// Untouched values keep their defaults.
	assert.Equal(t, "steam_random", cfg.Output.FilePrefix)
}

func TestLoadFromFileMissingPathIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.LoadFromFile(""))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STEAMDEX_API_KEY", "envkey")
	t.Setenv("STEAMDEX_REQUEST_DELAY", "2s")
	t.Setenv("STEAMDEX_CHECKPOINT_INTERVAL", "10")
	t.Setenv("STEAMDEX_OUTPUT_DIR", "/tmp/envout")
	t.Setenv("STEAMDEX_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "envkey", cfg.Steam.APIKey)
	assert.Equal(t, 2*time.Second, cfg.Collector.RequestDelay)
	assert.Equal(t, 10, cfg.Collector.CheckpointInterval)
	assert.Equal(t, "/tmp/envout", cfg.Output.Directory)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvPrefersSpecificKey(t *testing.T) {
	t.Setenv("STEAMDEX_API_KEY", "specific")
	t.Setenv("STEAM_API_KEY", "generic")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, "specific", cfg.Steam.APIKey)
}

func TestSteamAPIKeyFallback(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "generic")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, "generic", cfg.Steam.APIKey)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"api-key":             "flagkey",
		"output":              "/tmp/flagout",
		"delay":               300 * time.Millisecond,
		"checkpoint-interval": 7,
		"log-level":           "warn",
	})

	assert.Equal(t, "flagkey", cfg.Steam.APIKey)
	assert.Equal(t, "/tmp/flagout", cfg.Output.Directory)
	assert.Equal(t, 300*time.Millisecond, cfg.Collector.RequestDelay)
	assert.Equal(t, 7, cfg.Collector.CheckpointInterval)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Steam.RequestTimeout = 0 }},
		{"negative delay", func(c *Config) { c.Collector.RequestDelay = -time.Second }},
		{"zero checkpoint interval", func(c *Config) { c.Collector.CheckpointInterval = 0 }},
		{"empty checkpoint dir", func(c *Config) { c.Collector.CheckpointDir = "" }},
		{"empty output dir", func(c *Config) { c.Output.Directory = "" }},
		{"empty file prefix", func(c *Config) { c.Output.FilePrefix = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := DefaultConfig()
	cfg.Steam.APIKey = "roundtrip"
	cfg.Collector.CheckpointInterval = 42
	require.NoError(t, cfg.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, "roundtrip", reloaded.Steam.APIKey)
	assert.Equal(t, 42, reloaded.Collector.CheckpointInterval)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steam:\n  api_key: filekey\n"), 0644))

	t.Setenv("STEAMDEX_API_KEY", "envkey")

	// Flags beat environment beats file.
	cfg, err := Load(path, map[string]interface{}{"api-key": "flagkey"})
	require.NoError(t, err)
	assert.Equal(t, "flagkey", cfg.Steam.APIKey)

	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "envkey", cfg.Steam.APIKey)
}
