package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "taskflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, AuthModeMock, cfg.Client.AuthMode)
	assert.Equal(t, time.Second, cfg.Client.MutationDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Client.LogoutDelay)
	assert.Equal(t, "keyring", cfg.Storage.Backend)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9000"
client:
  api_url: https://api.example.com
  auth_mode: http
  mutation_delay: 250ms
storage:
  backend: sqlite
  path: /tmp/taskflow-test.sqlite
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://api.example.com", cfg.Client.APIURL)
	assert.Equal(t, AuthModeHTTP, cfg.Client.AuthMode)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.MutationDelay)
	// Untouched keys keep their defaults
	assert.Equal(t, 500*time.Millisecond, cfg.Client.LogoutDelay)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/taskflow-test.sqlite", cfg.Storage.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"9000\"\n")

	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000")
	t.Setenv("TASKFLOW_MUTATION_DELAY", "10ms")
	t.Setenv("TASKFLOW_STORAGE", "MEMORY")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 10*time.Millisecond, cfg.Client.MutationDelay)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{
			name: "missing explicit file",
			file: filepath.Join(t.TempDir(), "nope.yaml"),
		},
		{
			name: "invalid auth mode",
			env:  map[string]string{"TASKFLOW_AUTH_MODE": "oauth"},
		},
		{
			name: "invalid delay",
			env:  map[string]string{"TASKFLOW_MUTATION_DELAY": "soon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile(tt.file)
			assert.Error(t, err)
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8000", ServerConfig{Port: "127.0.0.1:8000"}.Addr())
	assert.Equal(t, ":8080", ServerConfig{Port: "8080"}.Addr())
}
