package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "server:\n  http-port: :8080\n"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.HttpPort)
	require.Equal(t, "release", cfg.Server.RunMode)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Database.AutoMigrate)

	require.Equal(t, 500*time.Millisecond, cfg.Capture.GetStructuredDebounce())
	require.Equal(t, 2*time.Second, cfg.Capture.GetLongformDebounce())
	require.Equal(t, 5*time.Second, cfg.Capture.GetDeletionGrace())
	require.Equal(t, 30*time.Second, cfg.Capture.GetStoreWriteTimeout())
	require.Equal(t, time.Minute, cfg.Capture.GetSweepInterval())
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
capture:
  structured-debounce: 50ms
  longform-debounce: 700ms
  deletion-grace: 10s
database:
  conn-max-lifetime: 1h
`))
	require.NoError(t, err)

	require.Equal(t, 50*time.Millisecond, cfg.Capture.GetStructuredDebounce())
	require.Equal(t, 700*time.Millisecond, cfg.Capture.GetLongformDebounce())
	require.Equal(t, 10*time.Second, cfg.Capture.GetDeletionGrace())
	require.Equal(t, time.Hour, cfg.Database.GetConnMaxLifetime())
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "capture:\n  deletion-grace: nonsense\n"))
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.Capture.GetDeletionGrace())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
