// Package forms holds the submit logic of the signup, workspace, room and
// meeting forms: defaults, validation, the busy flag and error reporting.
package forms

import (
	"sync"
	"time"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/report"
)

var (
	ErrRequired      = constants.ErrRequired
	ErrInvalidEmail  = constants.ErrInvalidEmail
	ErrBusy          = constants.ErrBusy
	ErrAlreadyActive = constants.ErrAlreadyActive
)

// Option configures a form.
type Option func(*options)

type options struct {
	reporter report.Reporter
	now      func() time.Time
}

// WithReporter routes submit failures to r. Forms report to report.Discard
// by default.
func WithReporter(r report.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithClock replaces time.Now for the meeting form's default schedule.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{reporter: report.Discard, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// status is the busy flag and last error shared by every form.
type status struct {
	mu       sync.Mutex
	busy     bool
	err      error
	message  string
	op       string
	fallback string
	reporter report.Reporter
}

// Busy reports whether a submission is in flight; the submit button is
// disabled while it is true.
func (s *status) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Err is the error of the last submission, nil after a success.
func (s *status) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Message is the text to show for Err, empty when there is none.
func (s *status) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// begin marks the form busy and clears the previous error.
func (s *status) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	s.err = nil
	s.message = ""
	return nil
}

// finish clears the busy flag and records err, reporting it when non-nil.
func (s *status) finish(err error) error {
	s.mu.Lock()
	s.busy = false
	s.err = err
	s.message = report.Message(err, s.fallback)
	s.mu.Unlock()

	if err != nil {
		s.reporter.Report(s.op, err)
	}
	return err
}
