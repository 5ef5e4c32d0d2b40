package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chronos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
host: http://chronos.example.com
datamodel_url: http://dm.example.com/api
timeout: 5s
retry_max: 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://chronos.example.com", cfg.Host)
	assert.Equal(t, "http://dm.example.com/api", cfg.DatamodelURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.RetryMax)
	assert.Empty(t, cfg.TSDBURL)
}

func TestLoadConfig_EmptyPathFallsBackToEnv(t *testing.T) {
	path := writeConfig(t, "host: http://from-env\n")
	t.Setenv(EnvConfig, path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.Host)
}

func TestLoadConfig_NoPathNoEnv(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, core.IsNotFound(err))

	bad := writeConfig(t, "host: [unterminated\n")
	_, err = LoadConfig(bad)
	require.True(t, core.IsValidation(err))
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{
		Host:     "http://h",
		TSDBURL:  "http://tsdb",
		Timeout:  3 * time.Second,
		RetryMax: 1,
	}

	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(o)
	}
	assert.Equal(t, "http://h", o.host)
	assert.Equal(t, "http://tsdb", o.tsdbURL)
	assert.Empty(t, o.datamodelURL)
	assert.Equal(t, 3*time.Second, o.timeout)
	assert.Equal(t, 1, o.retryMax)

	// The zero config contributes nothing.
	assert.Empty(t, Config{}.Options())
}
