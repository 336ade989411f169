package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikoffice/qikoffice-go/internal/fakeapi"
	"github.com/qikoffice/qikoffice-go/pkg/constants"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"QIKOFFICE_BACKEND_URL", "VITE_BACKEND_URL", "QIKOFFICE_HTTP_TIMEOUT",
		"QIKOFFICE_LOG_LEVEL", "QIKOFFICE_LOG_FILE", "QIKOFFICE_LISTEN_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestParseCommands(t *testing.T) {
	clearEnv(t)

	cmd, cfg, err := Parse([]string{"run"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "run", cmd.Name())
	assert.Equal(t, constants.DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, constants.DefaultHTTPTimeout, cfg.HTTPTimeout)

	cmd, cfg, err = Parse([]string{"-addr", "127.0.0.1:9999", "serve"}, io.Discard)
	require.NoError(t, err)
	assert.IsType(t, &ServeCommand{}, cmd)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)

	cmd, _, err = Parse([]string{"-users", "3", "demo"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, &DemoCommand{Users: 3}, cmd)
}

func TestParseFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QIKOFFICE_BACKEND_URL", "http://env.example:8000")
	t.Setenv("QIKOFFICE_LOG_LEVEL", "warn")

	_, cfg, err := Parse([]string{"-backend", "https://flag.example/", "-timeout", "5s", "run"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.BackendURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestParseErrors(t *testing.T) {
	clearEnv(t)

	_, _, err := Parse(nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subcommand required")
	assert.Contains(t, err.Error(), "Usage: qikoffice")

	_, _, err = Parse([]string{"fly"}, io.Discard)
	assert.ErrorContains(t, err, "unknown command: fly")

	_, _, err = Parse([]string{"-users", "0", "demo"}, io.Discard)
	assert.ErrorContains(t, err, "invalid -users 0")

	_, _, err = Parse([]string{"-backend", "ftp://x", "run"}, io.Discard)
	assert.ErrorIs(t, err, constants.ErrInvalidBaseURL)

	// serve does not need a usable backend url
	_, _, err = Parse([]string{"-backend", "ftp://x", "serve"}, io.Discard)
	assert.NoError(t, err)
}

func TestMainInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	err := Main(context.Background(), []string{"-log-level", "loud", "run"}, strings.NewReader(""), io.Discard, io.Discard)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestMainRunAndDemo(t *testing.T) {
	clearEnv(t)
	server := fakeapi.NewServer("127.0.0.1:0")
	require.NoError(t, server.Start())
	defer func() { _ = server.Stop() }()

	var out, logs bytes.Buffer
	in := strings.NewReader("Ana\nana@example.com\nAcme\n\n\n\n\n\n\nt Draft agenda\nx 1\nq\n")
	err := Main(context.Background(), []string{"-backend", server.URL(), "run"}, in, &out, &logs)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Completion: 100%")
	assert.Contains(t, logs.String(), "session ended")

	out.Reset()
	err = Main(context.Background(), []string{"-backend", server.URL(), "-users", "2", "demo"}, strings.NewReader(""), &out, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Virtual User 0")
	assert.Contains(t, out.String(), "Virtual User 1")
	assert.Contains(t, out.String(), "Completion:")
}

func TestMainServe(t *testing.T) {
	clearEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	errc := make(chan error, 1)
	go func() {
		errc <- Main(ctx, []string{"-addr", "127.0.0.1:0", "serve"}, strings.NewReader(""), &out, io.Discard)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "listening on")
	}, 5*time.Second, 10*time.Millisecond)

	url := strings.TrimSpace(strings.TrimPrefix(out.String(), "Qik Office API listening on "))
	resp, err := http.Get(url + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
