// Package helper provides test utilities shared by the license packages
package helper

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// RecordedRequest is a request received by a LicenseServer
type RecordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Body    map[string]any
	RawBody []byte
}

// Reply is a canned response. Raw, when set, is written verbatim instead of JSON.
type Reply struct {
	Status int
	JSON   any
	Raw    string
}

// LicenseServer is a fake license server built on httptest.Server
type LicenseServer struct {
	*httptest.Server
	URL string

	mu       sync.Mutex
	replies  map[string]Reply
	handler  http.HandlerFunc
	requests []RecordedRequest
}

// NewLicenseServer creates a fake license server closed at test cleanup
func NewLicenseServer(t *testing.T) *LicenseServer {
	t.Helper()

	ls := &LicenseServer{replies: make(map[string]Reply)}

	ts := httptest.NewServer(http.HandlerFunc(ls.serve))
	t.Cleanup(ts.Close)

	ls.Server = ts
	ls.URL = ts.URL

	return ls
}

// Reply sets the response for a path
func (ls *LicenseServer) Reply(path string, reply Reply) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.replies[path] = reply
}

// SetHandler replaces canned replies with a custom handler. Requests are still recorded.
func (ls *LicenseServer) SetHandler(h http.HandlerFunc) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.handler = h
}

// Requests returns the requests received for a path, in arrival order
func (ls *LicenseServer) Requests(path string) []RecordedRequest {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var out []RecordedRequest

	for _, r := range ls.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}

	return out
}

// Count returns the total number of requests received
func (ls *LicenseServer) Count() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return len(ls.requests)
}

func (ls *LicenseServer) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	rec := RecordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Header:  r.Header.Clone(),
		RawBody: raw,
	}

	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	ls.mu.Lock()
	ls.requests = append(ls.requests, rec)
	reply, ok := ls.replies[r.URL.Path]
	handler := ls.handler
	ls.mu.Unlock()

	if handler != nil {
		handler(w, r)

		return
	}

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)

	if reply.Raw != "" {
		_, _ = w.Write([]byte(reply.Raw))

		return
	}

	_ = json.NewEncoder(w).Encode(reply.JSON)
}

// AssertRequestMethod asserts that the request has the expected method
func (ls *LicenseServer) AssertRequestMethod(t *testing.T, req RecordedRequest, expectedMethod string) {
	t.Helper()
	require.Equal(t, expectedMethod, req.Method, "unexpected HTTP method")
}

// AssertHeader asserts that the request has the expected header
func (ls *LicenseServer) AssertHeader(t *testing.T, req RecordedRequest, key, expectedValue string) {
	t.Helper()
	require.Equal(t, expectedValue, req.Header.Get(key), "unexpected header value")
}
