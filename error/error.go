package error

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// TransportError reports that the request never produced a complete response:
// DNS failure, refused connection, TLS handshake failure, truncated body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that no complete response arrived within the allowed time.
// The in-flight request has been aborted when this is returned.
type TimeoutError struct {
	Method  string
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout error: %s %s: no response within %s", e.Method, e.URL, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that is not valid JSON
type ParseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: status %d: invalid JSON response: %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsTimeout checks if an error is a TimeoutError or a deadline expiry
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	var tErr *TimeoutError
	if errors.As(err, &tErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsParseError checks if an error is a ParseError
func IsParseError(err error) bool {
	var pErr *ParseError

	return errors.As(err, &pErr)
}

// IsConnectionError checks if an error is likely related to network connectivity
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *TransportError
	if errors.As(err, &tErr) || IsTimeout(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	// Check for known connection error messages
	connectionErrors := []string{
		"connection refused",
		"no such host",
		"host unreachable",
		"i/o timeout",
		"no route to host",
		"network is unreachable",
		"operation timed out",
		"eof",
		"connection reset by peer",
		"dial tcp",
		"tls handshake",
	}

	for _, msg := range connectionErrors {
		if strings.Contains(errStr, msg) {
			return true
		}
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
