package snipapi

import (
	"errors"
	"fmt"
)

// RequestError reports a non-2xx answer from the server.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	RequestID  string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// RequestError.
func StatusCode(err error) int {
	var rerr *RequestError
	if errors.As(err, &rerr) {
		return rerr.StatusCode
	}
	return 0
}
