package mocks

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

// ErrConnectionRefused is the error returned by HTTPClientConnectionErrorMock
var ErrConnectionRefused = errors.New("dial tcp 127.0.0.1:443: connect: connection refused")

// RoundTripFunc allows us to easily mock HTTP responses
type RoundTripFunc func(req *http.Request) (*http.Response, error)

// RoundTrip implements the http.RoundTripper interface
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// NewHTTPClientMock creates a new HTTP client with a mock transport
func NewHTTPClientMock(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

// NewHTTPResponse creates a new HTTP response with specified status code and body
func NewHTTPResponse(statusCode int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
}

// HTTPClientConnectionErrorMock returns a mock HTTP client that simulates a connection error
func HTTPClientConnectionErrorMock() *http.Client {
	return NewHTTPClientMock(func(*http.Request) (*http.Response, error) {
		return nil, ErrConnectionRefused
	})
}

// HTTPClientWithStatusMock returns a mock HTTP client that returns the given status code
func HTTPClientWithStatusMock(status int, body []byte) *http.Client {
	return NewHTTPClientMock(func(*http.Request) (*http.Response, error) {
		return NewHTTPResponse(status, body), nil
	})
}
