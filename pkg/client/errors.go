package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSession is returned when an authenticated request is attempted
// without a session token.
var ErrNoSession = errors.New("no session token")

// HTTPError represents a non-2xx HTTP response from the API.
// Message carries the server's "detail" text when it sent one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError means the request never produced an HTTP response:
// connection refused, DNS failure, timeout or a canceled context.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsRejected reports whether err (or any wrapped error) is an HTTPError,
// i.e. the server answered and refused the request.
func IsRejected(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// IsNetwork reports whether err (or any wrapped error) is a NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// Detail returns the server-supplied message of an HTTPError, or "" for
// any other error.
func Detail(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}
