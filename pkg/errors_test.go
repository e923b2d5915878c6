package pkg

import (
	"errors"
	"testing"

	"github.com/gestionpro/lib-license-go/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBusinessError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		args     []any
		code     string
		contains string
	}{
		{"no active license", constant.ErrNoActiveLicense, nil, "LCS-0001", "no active license"},
		{"invalid", constant.ErrLicenseInvalid, []any{"license revoked"}, "LCS-0002", "license revoked"},
		{"validation failed", constant.ErrLicenseValidationFail, []any{"unable to reach the license server"}, "LCS-0003", "unable to reach the license server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBusinessError(tt.err, "License", tt.args...)

			var forbidden ForbiddenError
			require.True(t, errors.As(err, &forbidden))
			assert.Equal(t, tt.code, forbidden.Code)
			assert.Equal(t, "License", forbidden.EntityType)
			assert.Contains(t, forbidden.Message, tt.contains)
		})
	}
}

func TestValidateBusinessError_Unknown(t *testing.T) {
	unknown := errors.New("something else")

	assert.Equal(t, unknown, ValidateBusinessError(unknown, ""))
}

func TestValidateInternalError(t *testing.T) {
	cause := errors.New("boom")

	err := ValidateInternalError(cause, "License")

	var internal InternalServerError
	require.True(t, errors.As(err, &internal))
	assert.Equal(t, constant.ErrInternalServer.Error(), internal.Code)
	assert.ErrorIs(t, err, cause)
}
