// Package config loads client and reference-server settings from the
// environment, after loading any .env files.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
)

type Config struct {
	// BackendURL is the Qik Office API base url, without trailing slash.
	BackendURL  string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFile     string
	// ListenAddr is where `qikoffice serve` binds the reference API.
	ListenAddr string
}

// Load reads the given env files (".env" when none are named) and builds a
// Config from the environment. Missing env files are not an error.
//
// The backend url is taken from QIKOFFICE_BACKEND_URL, falling back to
// VITE_BACKEND_URL so existing front-end .env files keep working.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	backend := GetEnvOrDefault("QIKOFFICE_BACKEND_URL", GetEnvOrDefault("VITE_BACKEND_URL", constants.DefaultBackendURL))

	timeout, err := time.ParseDuration(GetEnvOrDefault("QIKOFFICE_HTTP_TIMEOUT", constants.DefaultHTTPTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("invalid QIKOFFICE_HTTP_TIMEOUT: %w", err)
	}

	cfg := Config{
		BackendURL:  NormalizeBaseURL(backend),
		HTTPTimeout: timeout,
		LogLevel:    GetEnvOrDefault("QIKOFFICE_LOG_LEVEL", constants.DefaultLogLevel),
		LogFile:     os.Getenv("QIKOFFICE_LOG_FILE"),
		ListenAddr:  GetEnvOrDefault("QIKOFFICE_LISTEN_ADDR", constants.DefaultListenAddr),
	}
	return cfg, nil
}

// Validate checks the backend url is usable as a request prefix.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return constants.ErrNoBaseURL
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("%w: %v", constants.ErrInvalidBaseURL, err)
	}
	if (u.Scheme != constants.HTTPScheme && u.Scheme != constants.HTTPSecureScheme) || u.Host == "" {
		return fmt.Errorf("%w: %q", constants.ErrInvalidBaseURL, c.BackendURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

func NormalizeBaseURL(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
