package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "openai", cfg.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.Model)
	require.Equal(t, 10, cfg.MergeCap)
	require.Equal(t, 20, cfg.Window)
	require.Equal(t, "inmemory", cfg.MemoryStore)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, "zephyr", cfg.Mongo.Database)
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("provider: ollama\nmodel: llama3\nmerge_cap: 5\npostgres:\n  url: postgres://localhost/zephyr\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "ollama", cfg.Provider)
	require.Equal(t, "llama3", cfg.Model)
	require.Equal(t, 5, cfg.MergeCap)
	require.Equal(t, "postgres://localhost/zephyr", cfg.Postgres.URL)
	// Untouched keys keep their defaults.
	require.Equal(t, 20, cfg.Window)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
