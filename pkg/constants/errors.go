package constants

import "errors"

// Errors
var (
	ErrNoBaseURL         = errors.New("backend url not set")
	ErrInvalidBaseURL    = errors.New("backend url must be an absolute http or https url")
	ErrInvalidResponse   = errors.New("invalid Qik Office API response")
	ErrRequired          = errors.New("required field is empty")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrBusy              = errors.New("a submission is already in flight")
	ErrAlreadyActive     = errors.New("meeting already created")
	ErrInvalidTransition = errors.New("invalid pipeline transition")
	ErrNoSuchTask        = errors.New("no such task")
)
