package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray config.yaml or
// .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, "Local", cfg.Timezone)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "dayzen", cfg.Auth.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.TTL)
	require.False(t, cfg.Source.MockFallback)
	require.Equal(t, uint32(3), cfg.Source.Breaker.MaxFailures)
	require.Equal(t, 30*time.Second, cfg.Source.Breaker.Timeout)
	require.Equal(t, "dayzen.db", filepath.Base(cfg.DB.Path))
	require.ErrorIs(t, cfg.RequireSecret(), ErrNoSecret)
}

func TestFileAndEnvPrecedence(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "dayzen.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
timezone: UTC
log:
  level: debug
server:
  addr: ":9090"
source:
  mock_fallback: true
  breaker:
    max_failures: 5
`), 0o644))

	t.Setenv("DAYZEN_SERVER_ADDR", ":7070")
	t.Setenv("DAYZEN_AUTH_SECRET", "0123456789abcdef")

	cfg, err := Load(New(), file)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.True(t, cfg.Source.MockFallback)
	require.Equal(t, uint32(5), cfg.Source.Breaker.MaxFailures)
	require.NoError(t, cfg.RequireSecret())

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}

func TestDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DAYZEN_LOG_FORMAT=json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DAYZEN_LOG_FORMAT") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(New(), "does-not-exist.yaml")
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"short secret", map[string]string{"DAYZEN_AUTH_SECRET": "short"}},
		{"bad level", map[string]string{"DAYZEN_LOG_LEVEL": "loud"}},
		{"bad timezone", map[string]string{"DAYZEN_TIMEZONE": "Mars/Olympus"}},
		{"zero breaker", map[string]string{"DAYZEN_SOURCE_BREAKER_MAX_FAILURES": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(New(), "")
			require.Error(t, err)
		})
	}
}
