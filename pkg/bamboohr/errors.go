package bamboohr

import (
	"fmt"
	"strings"
)

// APIError is returned for any non-2xx response. The status code and raw body
// are preserved so callers can tell auth failures (401/403) from missing
// reports or fields (404) from server errors (5xx).
type APIError struct {
	StatusCode int
	Body       []byte
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bamboohr: status %d for %s: %s", e.StatusCode, e.URL, bodySnippet(e.Body))
}

// DecodeError is returned when a 2xx response body cannot be parsed.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bamboohr: decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// bodySnippet truncates a response body for error messages.
func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
