package helper

import (
	"testing"

	"github.com/gestionpro/lib-license-go/model"
	"github.com/stretchr/testify/assert"
)

// AssertValidationResult is a helper function to check a ValidationResult
func AssertValidationResult(t *testing.T, result model.ValidationResult, expectedValid bool, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedValid, result.Valid, "validation result validity mismatch")
	assert.Equal(t, expectedMessage, result.Message, "validation message mismatch")
}

// AssertActivationResult is a helper function to check an ActivationResult
func AssertActivationResult(t *testing.T, result model.ActivationResult, expectedSuccess bool, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedSuccess, result.Success, "activation result success mismatch")
	assert.Equal(t, expectedMessage, result.Message, "activation message mismatch")
}

// FixedHostFacts returns a deterministic host snapshot
func FixedHostFacts() model.HostFacts {
	return model.HostFacts{
		Hostname:    "caisse-01",
		Platform:    "windows",
		Arch:        "amd64",
		CPUModel:    "Intel(R) Core(TM) i5-8250U CPU @ 1.60GHz",
		CPUCount:    8,
		TotalMemory: 8 * 1024 * 1024 * 1024,
	}
}
