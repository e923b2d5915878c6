package constant

import "time"

// HeaderConstants defines HTTP header names and values used in requests
const (
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderContentLength = "Content-Length"
	MIMEApplicationJSON = "application/json"
)

// Client identification sent as User-Agent
const (
	DefaultClientName    = "GestionPro-License-Client"
	DefaultClientVersion = "1.0.0"
)

// TimeConstants defines timeout and interval values
const (
	// DefaultHTTPTimeout bounds a single request/response exchange with the license server
	DefaultHTTPTimeout = 10 * time.Second
	// DefaultRefreshInterval is the default periodic validation interval
	DefaultRefreshInterval = 2 * time.Hour
)

// MaxErrorBodyExcerpt limits how much of an unparsable body is kept in a ParseError
const MaxErrorBodyExcerpt = 256
