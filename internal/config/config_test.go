package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "engine: shiori\ntimeout: 5s\nfetcher: browser\nstore_path: /tmp/saves\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savekit.yaml"), []byte(yaml), 0o600))

	t.Setenv("SAVEKIT_RETRIES", "3")
	t.Setenv("SAVEKIT_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "shiori", cfg.Engine)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, FetcherBrowser, cfg.Fetcher)
	assert.Equal(t, "/tmp/saves", cfg.StorePath)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, "debug", cfg.LogLevel)

	opts := cfg.ExtractionOptions()
	assert.Equal(t, "shiori", opts.Engine)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savekit.yaml"), []byte("fetcher: carrier-pigeon\n"), 0o600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "invalid fetcher")
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savekit.yaml"), []byte("engine: [unclosed\n"), 0o600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "error reading config file")
}
