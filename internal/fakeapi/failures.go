package fakeapi

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// FailureType represents the type of failure to inject during request processing
type FailureType string

const (
	// FailureNone indicates no failure injection
	FailureNone FailureType = "none"
	// FailureRequestDelay delays before processing the request
	FailureRequestDelay FailureType = "request_delay"
	// FailureStatus answers with Status and a {"detail": Detail} body
	FailureStatus FailureType = "status"
	// FailureInvalidResponse answers 200 with a body that is not JSON
	FailureInvalidResponse FailureType = "invalid_response"
	// FailureDropConnection closes the underlying connection without answering
	FailureDropConnection FailureType = "drop_connection"
)

// RequestMatcher defines criteria for matching incoming requests.
type RequestMatcher struct {
	// Method is the HTTP method to match; empty matches any.
	Method string
	// Path is the route template to match, e.g. "/api/tasks/{id}/status"; empty matches any.
	Path string
	// Matcher is an optional function for finer matching.
	Matcher func(r *http.Request) bool
}

func (m RequestMatcher) matches(r *http.Request, pathTemplate string) bool {
	if m.Method != "" && m.Method != r.Method {
		return false
	}
	if m.Path != "" && m.Path != pathTemplate {
		return false
	}
	if m.Matcher != nil && !m.Matcher(r) {
		return false
	}
	return true
}

// StubResponse defines a pre-configured response for matching requests.
// When Status is zero the real handler answers, after Failures are applied.
type StubResponse struct {
	Matcher RequestMatcher
	// Status is the HTTP status to answer with.
	Status int
	// Body is marshaled as the JSON response body.
	Body any
	// Failures defines failure injection configurations for this response
	Failures []FailureConfig
	// Times limits how many requests the stub answers; zero means unlimited.
	Times int

	used int
}

// FailureConfig defines how and when to inject a specific failure type
type FailureConfig struct {
	// Type specifies the type of failure to inject
	Type FailureType
	// Probability of triggering this failure (0.0 to 1.0)
	Probability float64
	// MinDelay is the minimum delay for FailureRequestDelay
	MinDelay time.Duration
	// MaxDelay is the maximum delay for FailureRequestDelay
	MaxDelay time.Duration
	// Status is the HTTP status for FailureStatus
	Status int
	// Detail is the error detail for FailureStatus
	Detail string
}

// SimpleStubResponse answers every matching request with status and body.
func SimpleStubResponse(method, path string, status int, body any) StubResponse {
	return StubResponse{
		Matcher: RequestMatcher{Method: method, Path: path},
		Status:  status,
		Body:    body,
	}
}

// AlwaysFail returns a failure that triggers on every request.
func AlwaysFail(status int, detail string) FailureConfig {
	return FailureConfig{Type: FailureStatus, Probability: 1, Status: status, Detail: detail}
}

// cryptoRandInt64 generates a cryptographically secure random int64 in [0, max)
func cryptoRandInt64(rMax int64) int64 {
	if rMax <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(rMax))
	return n.Int64()
}

// cryptoRandFloat64 generates a cryptographically secure random float64 in [0.0, 1.0)
func cryptoRandFloat64() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(1<<53))
	return float64(n.Int64()) / float64(1<<53)
}

func (f FailureConfig) triggered() bool {
	if f.Type == FailureNone || f.Type == "" {
		return false
	}
	return f.Probability >= 1 || cryptoRandFloat64() < f.Probability
}

func (f FailureConfig) delay() time.Duration {
	if f.MaxDelay <= f.MinDelay {
		return f.MinDelay
	}
	return f.MinDelay + time.Duration(cryptoRandInt64(int64(f.MaxDelay-f.MinDelay)))
}

// middleware counts routed requests, then applies global failures, then the
// first matching stub.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pathTemplate := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				pathTemplate = tpl
			}
		}

		s.mu.Lock()
		s.requestCounts[routeKey(r.Method, pathTemplate)]++
		failures := append([]FailureConfig(nil), s.globalFailures...)
		var stub *StubResponse
		for i := range s.stubResponses {
			candidate := &s.stubResponses[i]
			if candidate.Times > 0 && candidate.used >= candidate.Times {
				continue
			}
			if candidate.Matcher.matches(r, pathTemplate) {
				candidate.used++
				copied := *candidate
				stub = &copied
				break
			}
		}
		s.mu.Unlock()

		s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Bool("stubbed", stub != nil).Msg("request")

		if stub != nil {
			failures = append(failures, stub.Failures...)
		}
		for _, f := range failures {
			if !f.triggered() {
				continue
			}
			if handled := s.applyFailure(w, r, f); handled {
				return
			}
		}

		if stub != nil && stub.Status != 0 {
			respondJSON(w, stub.Status, stub.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// applyFailure injects f and reports whether the response has been handled.
func (s *Server) applyFailure(w http.ResponseWriter, r *http.Request, f FailureConfig) bool {
	switch f.Type {
	case FailureRequestDelay:
		select {
		case <-time.After(f.delay()):
		case <-r.Context().Done():
			return true
		}
		return false
	case FailureStatus:
		status := f.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		respondError(w, status, f.Detail)
		return true
	case FailureInvalidResponse:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
		return true
	case FailureDropConnection:
		hj, ok := w.(http.Hijacker)
		if !ok {
			respondError(w, http.StatusInternalServerError, "connection cannot be dropped")
			return true
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
		return true
	default:
		return false
	}
}
