// Package report is the single path every failed mutation goes through.
package report

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	qikoffice "github.com/qikoffice/qikoffice-go"
)

// Reporter receives every mutation failure. op names the user action,
// e.g. "signup" or "add note".
type Reporter interface {
	Report(op string, err error)
}

// Func adapts a function to Reporter.
type Func func(op string, err error)

func (f Func) Report(op string, err error) { f(op, err) }

// Log reports failures as zerolog warnings.
func Log(log zerolog.Logger) Reporter {
	return Func(func(op string, err error) {
		log.Warn().Err(err).Str("op", op).Bool("api_error", qikoffice.IsAPIError(err)).Msg("operation failed")
	})
}

// Multi fans a report out to several reporters.
func Multi(reporters ...Reporter) Reporter {
	return Func(func(op string, err error) {
		for _, r := range reporters {
			if r != nil {
				r.Report(op, err)
			}
		}
	})
}

// Discard drops every report.
var Discard Reporter = Func(func(string, error) {})

// Message turns err into the text shown to the user: the server's detail
// message for application failures, fallback when the server sent none,
// and the error text itself for transport and validation failures.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if detail, ok := qikoffice.DetailOf(err); ok {
		return detail
	}
	if qikoffice.IsAPIError(err) {
		return fallback
	}
	return err.Error()
}

// Entry is one recorded failure.
type Entry struct {
	Op  string
	Err error
}

// Recorder keeps every report; handy in tests and for status lines.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Report(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Op: op, Err: err})
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns the most recent entry.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Has reports whether any recorded error matches target.
func (r *Recorder) Has(target error) bool {
	for _, e := range r.Entries() {
		if errors.Is(e.Err, target) {
			return true
		}
	}
	return false
}
