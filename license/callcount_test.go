package license_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/license"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockBaseURL = "https://licence.example.test/api"

func newMockedManager(t *testing.T) (*license.Manager, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	m := newManager(t, mockBaseURL, license.WithHTTPClient(&http.Client{Transport: transport}))

	return m, transport
}

func TestValidate_NoKeyPerformsNoRequest(t *testing.T) {
	m, transport := newMockedManager(t)

	transport.RegisterResponder(http.MethodPost, mockBaseURL+cn.ValidatePath,
		httpmock.NewStringResponder(http.StatusOK, `{"valid":true,"message":"active"}`))

	res := m.Validate(context.Background(), "")

	assert.False(t, res.Valid)
	assert.Equal(t, cn.NoLicenseToValidateMessage, res.Message)
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestValidate_OneRequestPerCallAfterActivation(t *testing.T) {
	m, transport := newMockedManager(t)

	transport.RegisterResponder(http.MethodPost, mockBaseURL+cn.ActivatePath,
		httpmock.NewStringResponder(http.StatusOK, `{"success":true,"message":"ok"}`))
	transport.RegisterResponder(http.MethodPost, mockBaseURL+cn.ValidatePath,
		httpmock.NewStringResponder(http.StatusOK, `{"valid":true,"message":"active"}`))

	require.True(t, m.Activate(context.Background(), "ABC-123").Success)

	for i := 1; i <= 3; i++ {
		res := m.Validate(context.Background(), "")
		require.True(t, res.Valid)

		counts := transport.GetCallCountInfo()
		assert.Equal(t, i, counts["POST "+mockBaseURL+cn.ValidatePath])
	}

	assert.Equal(t, 1, transport.GetCallCountInfo()["POST "+mockBaseURL+cn.ActivatePath])
}

func TestOperations_NeverFail(t *testing.T) {
	responders := map[string]httpmock.Responder{
		"network error":  httpmock.NewErrorResponder(errors.New("dial tcp: lookup licence.example.test: no such host")),
		"html body":      httpmock.NewStringResponder(http.StatusBadGateway, "<html>Bad Gateway</html>"),
		"empty body":     httpmock.NewStringResponder(http.StatusOK, ""),
		"unexpected 418": httpmock.NewStringResponder(http.StatusTeapot, `{"message":"teapot"}`),
		"null document":  httpmock.NewStringResponder(http.StatusOK, `null`),
	}

	for name, responder := range responders {
		t.Run(name, func(t *testing.T) {
			m, transport := newMockedManager(t)
			transport.RegisterNoResponder(responder)

			require.NotPanics(t, func() {
				activation := m.Activate(context.Background(), "ABC-123")
				assert.False(t, activation.Success)
				assert.NotEmpty(t, activation.Message)

				validation := m.Validate(context.Background(), "ABC-123")
				assert.False(t, validation.Valid)
				assert.NotEmpty(t, validation.Message)

				periodic := m.PeriodicValidation(context.Background())
				assert.False(t, periodic.Valid)

				assert.False(t, m.CheckServerHealth(context.Background()))
			})
		})
	}
}
