package model

import "encoding/json"

// ActivationResult is what Activate resolves to, on every path.
type ActivationResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ValidationResult is what Validate and PeriodicValidation resolve to.
// Error is only set when the server could not be reached or understood.
type ValidationResult struct {
	Valid   bool            `json:"valid"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Offline reports whether the result comes from a transport, timeout or parse
// failure rather than from the server's verdict.
func (r ValidationResult) Offline() bool {
	return !r.Valid && r.Error != ""
}
