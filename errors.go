package qikoffice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	// Detail is the server's "detail" message, if the body carried one.
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error: status=%d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error: status=%d, body=%s", e.StatusCode, string(e.Body))
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Detail:     parseDetail(body),
		Body:       body,
	}
}

// parseDetail extracts the "detail" field. It is usually a string; request
// validation failures send a list of {"loc", "msg"} objects instead, whose
// messages are joined.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	if string(envelope.Detail) == "null" {
		return ""
	}
	return string(envelope.Detail)
}

// DetailOf returns the server-provided detail message of err, if err wraps an *APIError.
func DetailOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// IsAPIError reports whether err is an application-level failure (the
// server answered with a non-2xx status) as opposed to a transport failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
