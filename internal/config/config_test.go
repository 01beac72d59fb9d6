package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "invotrack.db", cfg.DB.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.False(t, cfg.Auth.Enabled)
	require.Empty(t, cfg.Remote.DatabaseURL)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
db:
  path: /tmp/file.db
log:
  level: debug
`), 0o600))
	t.Setenv("INVOTRACK_CONFIG_PATH", path)
	t.Setenv("INVOTRACK_DB_PATH", "/tmp/env.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "/tmp/env.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("INVOTRACK_SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTransportMode(t *testing.T) {
	t.Setenv("INVOTRACK_TRANSPORT_MODE", "grpc")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_AuthRequiresURL(t *testing.T) {
	t.Setenv("INVOTRACK_AUTH_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("INVOTRACK_AUTH_URL", "https://auth.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Auth.Enabled)
}
