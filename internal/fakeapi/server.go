// Package fakeapi provides an in-memory Qik Office API server.
//
// It implements every endpoint the client calls, keeps all state in memory,
// and is used both by `qikoffice serve` for local development and by tests
// across the module.
//
// To flexibly inject failures, you can configure stub responses that match a
// route (method plus path template), along with failure configurations that
// specify how it fails (delays, error statuses, dropped connections).
// Every routed request is counted so tests can assert on network traffic.
package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server is a fake Qik Office API with support for stub responses and
// failure injection.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	router     *mux.Router
	log        zerolog.Logger

	mu             sync.RWMutex
	store          *memoryStore
	stubResponses  []StubResponse
	globalFailures []FailureConfig
	requestCounts  map[string]int

	// NewID generates identifiers for created entities. Defaults to random UUIDs.
	NewID func() string
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithSequentialIDs makes the server assign ids "1", "2", ... which keeps
// test expectations readable.
func WithSequentialIDs() Option {
	return func(s *Server) {
		var (
			mu sync.Mutex
			n  int
		)
		s.NewID = func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("%d", n)
		}
	}
}

// NewServer creates a new fake API server.
// Use "127.0.0.1:0" to bind to a random available port.
func NewServer(addr string, opts ...Option) *Server {
	s := &Server{
		addr:          addr,
		log:           zerolog.Nop(),
		store:         newMemoryStore(),
		requestCounts: make(map[string]int),
		NewID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's http.Handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info().Str("addr", listener.Addr().String()).Msg("fake Qik Office API listening")

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("server error")
		}
	}()
	return nil
}

// Stop shuts the server down, waiting up to 5 seconds for in-flight requests.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Address returns the bound address, or the configured one before Start.
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// URL returns the base url clients should use.
func (s *Server) URL() string {
	return "http://" + s.Address()
}

// AddStubResponse adds a stub response configuration to the server.
// Stub responses are matched in the order they were added.
func (s *Server) AddStubResponse(stub StubResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubResponses = append(s.stubResponses, stub)
}

// ClearStubResponses removes all stubs; the real handlers answer again.
func (s *Server) ClearStubResponses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubResponses = nil
}

// SetGlobalFailures sets failure configurations that apply to all requests.
// These are checked before stub-specific failures.
func (s *Server) SetGlobalFailures(failures []FailureConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalFailures = failures
}

// Requests returns how many requests hit the route, e.g. Requests("POST", "/api/notes").
// Route paths are the templates, so Requests("PATCH", "/api/tasks/{id}/status")
// counts patches of every task.
func (s *Server) Requests(method, pathTemplate string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requestCounts[routeKey(method, pathTemplate)]
}

// TotalRequests returns the number of routed requests of any kind.
func (s *Server) TotalRequests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, n := range s.requestCounts {
		total += n
	}
	return total
}

// ResetRequestCounts zeroes all request counters.
func (s *Server) ResetRequestCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestCounts = make(map[string]int)
}

func routeKey(method, pathTemplate string) string {
	return method + " " + pathTemplate
}
