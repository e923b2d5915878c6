package model

import (
	"encoding/json"
	"time"
)

// Config holds the host-level settings the license client is built from.
type Config struct {
	ApplicationName string        `json:"applicationName"`
	ServerURL       string        `json:"serverUrl"`
	LicenseFile     string        `json:"licenseFile"`
	HTTPTimeout     time.Duration `json:"httpTimeout"`
	RefreshInterval time.Duration `json:"refreshInterval"`
}

// ActivateRequest is the body sent to POST /activate
type ActivateRequest struct {
	LicenseKey          string `json:"licenseKey"`
	MachineID           string `json:"machineId"`
	HardwareFingerprint string `json:"hardwareFingerprint"`
	Timestamp           string `json:"timestamp"`
}

// ValidateRequest is the body sent to POST /validate
type ValidateRequest struct {
	LicenseKey          string `json:"licenseKey"`
	MachineID           string `json:"machineId"`
	HardwareFingerprint string `json:"hardwareFingerprint"`
}

// ActivationResponse is the typed view of the /activate response.
// Absent fields stay nil so callers can tell them from false or empty.
type ActivationResponse struct {
	Success *bool   `json:"success,omitempty"`
	Message *string `json:"message,omitempty"`
}

// ValidationResponse is the typed view of the /validate response
type ValidationResponse struct {
	Valid   *bool   `json:"valid,omitempty"`
	Message *string `json:"message,omitempty"`
}

// HealthResponse is the typed view of the /health response
type HealthResponse struct {
	Status string `json:"status"`
}

// Response is a raw exchange with the license server: the HTTP status and the
// parsed JSON document, whatever the status.
type Response struct {
	Status int
	Data   json.RawMessage
}

// StoredLicense is the persisted record of an activated license key
type StoredLicense struct {
	LicenseKey  string    `yaml:"licenseKey"`
	MachineID   string    `yaml:"machineId"`
	ActivatedAt time.Time `yaml:"activatedAt"`
}
