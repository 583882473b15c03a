// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docexplorer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, types.APIConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: DefaultUserAgent},
		BaseURL:    DefaultBaseURL,
	}, cfg.API)
	assert.Equal(t, DefaultAddr, cfg.Serve.Addr)
	assert.Empty(t, cfg.Serve.AllowedOrigins)
	assert.Equal(t, types.LogConfig{Level: DefaultLogLevel}, cfg.Log)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://docs.example.org/api/
  timeout: 15s
serve:
  addr: 127.0.0.1:9000
  allowed_origins: [https://ui.example.org]
log:
  level: debug
  json: true
`)
	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.org/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.API.UserAgent)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.Equal(t, []string{"https://ui.example.org"}, cfg.Serve.AllowedOrigins)
	assert.Equal(t, types.LogConfig{Level: "debug", JSON: true}, cfg.Log)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: http://file.example\n")
	t.Setenv("DOCEXPLORER_API_BASE_URL", "http://env.example:5000")
	t.Setenv("DOCEXPLORER_LOG_LEVEL", "warn")

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example:5000", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: not a url\nlog:\n  level: loud\n")
	v, err := New(path)
	require.NoError(t, err)

	_, err = Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url must be an absolute URL")
	assert.Contains(t, err.Error(), "log.level must be one of: debug info warn error")
}

func TestValidateRequired(t *testing.T) {
	err := Validate(types.ExplorerConfig{
		API: types.APIConfig{BaseURL: "http://x"},
		Log: types.LogConfig{Level: "info"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve.addr is required")
}
