// Package loader fetches remote data for a url that can change over time,
// exposing {Data, Loading, Err} and never letting an older response
// overwrite a newer one.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
)

// Fetcher performs one request for url.
type Fetcher[T any] func(ctx context.Context, url string) (T, error)

// State is a snapshot of a Loader.
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// Loader issues a request whenever its url changes. Results of requests whose
// url has since changed are discarded.
type Loader[T any] struct {
	fetch Fetcher[T]
	log   zerolog.Logger

	mu     sync.Mutex
	url    string
	gen    uint64
	cancel context.CancelFunc
	closed bool
	state  State[T]
}

type Option func(*options)

type options struct {
	log zerolog.Logger
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func New[T any](fetch Fetcher[T], opts ...Option) *Loader[T] {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{fetch: fetch, log: o.log}
}

// Load points the loader at url. A request starts only when url differs
// from the current one; an empty url issues nothing and leaves the loader
// idle. The returned channel is closed once the request started by this call
// has settled, whether its result was applied or discarded.
//
// Errors end up in State, never in the caller.
func (l *Loader[T]) Load(ctx context.Context, url string) <-chan struct{} {
	done := make(chan struct{})

	l.mu.Lock()
	if l.closed || url == l.url {
		l.mu.Unlock()
		close(done)
		return done
	}

	l.url = url
	l.gen++
	gen := l.gen
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if url == "" {
		l.state.Loading = false
		l.mu.Unlock()
		close(done)
		return done
	}

	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state.Loading = true
	l.state.Err = nil
	l.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		data, err := l.fetch(reqCtx, url)

		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.gen || l.closed {
			l.log.Debug().Str("url", url).Msg("discarding stale response")
			return
		}
		if err != nil {
			l.state.Err = err
		} else {
			l.state.Data = data
		}
		l.state.Loading = false
		l.cancel = nil
	}()

	return done
}

// State returns the current snapshot.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// URL returns the url the loader currently points at.
func (l *Loader[T]) URL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url
}

// Close cancels the in-flight request and drops all later results.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// JSONFetcher GETs url and decodes the JSON body. A body that is not valid
// JSON is an error; the status code is not checked, so an error payload that
// decodes into T is returned as data.
func JSONFetcher[T any](client *http.Client) Fetcher[T] {
	if client == nil {
		client = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}
	return func(ctx context.Context, url string) (T, error) {
		var zero T
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return zero, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return zero, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return zero, fmt.Errorf("failed to read response: %w", err)
		}
		var data T
		if err := json.Unmarshal(body, &data); err != nil {
			return zero, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
		}
		return data, nil
	}
}
