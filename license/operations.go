package license

import (
	"context"
	"encoding/json"
	"net/http"

	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
)

// timestampLayout matches an ISO-8601 UTC instant with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Activate binds licenseKey to this machine on the license server.
// The key is kept in memory only when the server answers 200 with success true.
func (m *Manager) Activate(ctx context.Context, licenseKey string) model.ActivationResult {
	if licenseKey == "" {
		return model.ActivationResult{Success: false, Message: cn.EmptyLicenseKeyMessage}
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	body := model.ActivateRequest{
		LicenseKey:          licenseKey,
		MachineID:           m.identity.MachineID,
		HardwareFingerprint: m.identity.HardwareFingerprint,
		Timestamp:           m.now().UTC().Format(timestampLayout),
	}

	resp, err := m.requester.Request(ctx, http.MethodPost, cn.ActivatePath, body)
	if err != nil {
		m.logger.Errorf("License activation failed - unable to reach the license server: %v", err)

		return model.ActivationResult{
			Success: false,
			Message: cn.ConnectionFailedMessage,
			Error:   err.Error(),
		}
	}

	var out model.ActivationResponse
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		m.logger.Debugf("Activation response is not an object: %v", err)
	}

	if resp.Status == http.StatusOK && out.Success != nil && *out.Success {
		m.setLicenseKey(licenseKey)
		m.logger.Infof("License activated for machine %s", m.identity.MachineID)

		return model.ActivationResult{
			Success: true,
			Message: stringOr(out.Message, ""),
			Data:    resp.Data,
		}
	}

	message := stringOr(out.Message, cn.DefaultActivationFailedMessage)

	m.logger.Warnf("License activation rejected - status: %d, message: %s", resp.Status, message)

	return model.ActivationResult{
		Success: false,
		Message: message,
		Data:    resp.Data,
	}
}

// Validate checks a license with the server. It uses override when non-empty,
// the activated key otherwise, and sends nothing when neither exists.
func (m *Manager) Validate(ctx context.Context, override string) model.ValidationResult {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	return m.validate(ctx, override)
}

func (m *Manager) validate(ctx context.Context, override string) model.ValidationResult {
	licenseKey := override
	if licenseKey == "" {
		licenseKey = m.LicenseKey()
	}

	if licenseKey == "" {
		return model.ValidationResult{Valid: false, Message: cn.NoLicenseToValidateMessage}
	}

	body := model.ValidateRequest{
		LicenseKey:          licenseKey,
		MachineID:           m.identity.MachineID,
		HardwareFingerprint: m.identity.HardwareFingerprint,
	}

	resp, err := m.requester.Request(ctx, http.MethodPost, cn.ValidatePath, body)
	if err != nil {
		m.logger.Errorf("License validation failed - unable to reach the license server: %v", err)

		return model.ValidationResult{
			Valid:   false,
			Message: cn.ConnectionFailedMessage,
			Error:   err.Error(),
		}
	}

	var out model.ValidationResponse
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		m.logger.Debugf("Validation response is not an object: %v", err)
	}

	if resp.Status != http.StatusOK {
		message := stringOr(out.Message, cn.DefaultValidationFailedMessage)

		m.logger.Warnf("License validation rejected - status: %d, message: %s", resp.Status, message)

		return model.ValidationResult{Valid: false, Message: message, Data: resp.Data}
	}

	valid := out.Valid != nil && *out.Valid

	fallback := ""
	if !valid {
		fallback = cn.DefaultValidationFailedMessage

		m.logger.Warnf("License reported invalid for machine %s", m.identity.MachineID)
	}

	return model.ValidationResult{
		Valid:   valid,
		Message: stringOr(out.Message, fallback),
		Data:    resp.Data,
	}
}

// PeriodicValidation re-validates the activated license. It is meant to be
// called by a caller-owned timer and sends nothing when no key is active.
func (m *Manager) PeriodicValidation(ctx context.Context) model.ValidationResult {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.LicenseKey() == "" {
		return model.ValidationResult{Valid: false, Message: cn.NoActiveLicenseMessage}
	}

	return m.validate(ctx, "")
}

// CheckServerHealth reports whether the license server answers 200 with status "OK"
func (m *Manager) CheckServerHealth(ctx context.Context) bool {
	resp, err := m.requester.Request(ctx, http.MethodGet, cn.HealthPath, nil)
	if err != nil {
		m.logger.Warnf("License server health check failed: %v", err)

		return false
	}

	if resp.Status != http.StatusOK {
		return false
	}

	var out model.HealthResponse
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return false
	}

	return out.Status == cn.HealthStatusOK
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}

	return *s
}

// roundGigabytes rounds a byte count to the nearest whole gigabyte
func roundGigabytes(bytes uint64) uint64 {
	return (bytes + cn.BytesPerGigabyte/2) / cn.BytesPerGigabyte
}
