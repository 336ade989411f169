package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QIKOFFICE_BACKEND_URL",
		"VITE_BACKEND_URL",
		"QIKOFFICE_HTTP_TIMEOUT",
		"QIKOFFICE_LOG_LEVEL",
		"QIKOFFICE_LOG_FILE",
		"QIKOFFICE_LISTEN_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, constants.DefaultListenAddr, cfg.ListenAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_BACKEND_URL", "https://api.qik.example/")
	t.Setenv("QIKOFFICE_HTTP_TIMEOUT", "5s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.qik.example", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)

	t.Setenv("QIKOFFICE_BACKEND_URL", "http://10.0.0.2:9000")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9000", cfg.BackendURL)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, including
	// ones set to the empty string, so unset them for this test.
	for _, k := range []string{"QIKOFFICE_BACKEND_URL", "QIKOFFICE_LOG_LEVEL"} {
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("QIKOFFICE_BACKEND_URL")
		_ = os.Unsetenv("QIKOFFICE_LOG_LEVEL")
	})

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QIKOFFICE_BACKEND_URL=http://from-dotenv:8000\nQIKOFFICE_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:8000", cfg.BackendURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("QIKOFFICE_HTTP_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "empty", cfg: Config{HTTPTimeout: time.Second}, wantErr: constants.ErrNoBaseURL},
		{name: "relative", cfg: Config{BackendURL: "/api", HTTPTimeout: time.Second}, wantErr: constants.ErrInvalidBaseURL},
		{name: "websocket", cfg: Config{BackendURL: "ws://localhost:8000", HTTPTimeout: time.Second}, wantErr: constants.ErrInvalidBaseURL},
		{name: "ok", cfg: Config{BackendURL: "http://localhost:8000", HTTPTimeout: time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	require.Error(t, Config{BackendURL: "http://localhost:8000"}.Validate())
}
