package shutdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHandlerPanics(t *testing.T) {
	m := New()

	assert.PanicsWithValue(t, "LICENSE VALIDATION FAILED: revoked", func() {
		m.Terminate("revoked")
	})
}

func TestTerminate_OnceUntilReset(t *testing.T) {
	m := New()

	var reasons []string
	m.SetHandler(func(reason string) { reasons = append(reasons, reason) })
	m.SetHandler(nil)

	m.Terminate("revoked")
	m.Terminate("expired")

	assert.Equal(t, []string{"revoked"}, reasons)

	terminated, reason := m.Terminated()
	assert.True(t, terminated)
	assert.Equal(t, "revoked", reason)

	m.Reset()
	m.Terminate("expired")

	assert.Equal(t, []string{"revoked", "expired"}, reasons)
}
