package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gestionpro/lib-license-go/internal/cache"
	"github.com/gestionpro/lib-license-go/internal/shutdown"
	"github.com/gestionpro/lib-license-go/model"
	"github.com/gestionpro/lib-license-go/test/helper/testlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) PeriodicValidation(ctx context.Context) model.ValidationResult {
	args := m.Called(ctx)
	return args.Get(0).(model.ValidationResult)
}

func (m *mockValidator) LicenseKey() string {
	return m.Called().String(0)
}

type terminations struct {
	mu      sync.Mutex
	reasons []string
}

func (t *terminations) handle(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reasons = append(t.reasons, reason)
}

func (t *terminations) get() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.reasons...)
}

func newTestManager(t *testing.T, v Validator, interval time.Duration) (*Manager, *terminations, *testlogger.TestLogger) {
	t.Helper()

	logger := testlogger.New()

	c, err := cache.New(logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	term := &terminations{}
	sm := shutdown.New()
	sm.SetHandler(term.handle)

	return New(v, interval, c, sm, logger), term, logger
}

var (
	validResult   = model.ValidationResult{Valid: true, Message: "active"}
	revokedResult = model.ValidationResult{Valid: false, Message: "license revoked"}
	offlineResult = model.ValidationResult{Valid: false, Message: "unable to reach the license server", Error: "transport error: connection refused"}
)

func TestRunOnce_Valid(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(validResult).Once()

	m, term, _ := newTestManager(t, v, time.Hour)

	res := m.RunOnce(context.Background())

	assert.True(t, res.Valid)
	assert.True(t, m.Licensed())
	assert.Equal(t, validResult, m.LastResult())
	assert.False(t, m.LastAttempt().IsZero())
	assert.False(t, m.LastSuccess().IsZero())
	assert.Empty(t, term.get())
	v.AssertExpectations(t)
}

func TestRunOnce_OfflineWithCachedResultKeepsRunning(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(validResult).Once()
	v.On("PeriodicValidation", mock.Anything).Return(offlineResult).Once()

	m, term, logger := newTestManager(t, v, time.Hour)

	m.RunOnce(context.Background())
	res := m.RunOnce(context.Background())

	assert.True(t, res.Offline())
	assert.True(t, m.Licensed(), "offline failure is tolerated while a good result is cached")
	assert.Empty(t, term.get())
	assert.True(t, logger.Contains("WARN", "keeping last good validation"))
}

func TestRunOnce_OfflineWithoutCacheTerminates(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(offlineResult).Once()

	m, term, _ := newTestManager(t, v, time.Hour)

	m.RunOnce(context.Background())

	assert.False(t, m.Licensed())
	assert.Equal(t, []string{offlineResult.Message}, term.get())
}

func TestRunOnce_RevokedTerminatesOnce(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(validResult).Once()
	v.On("PeriodicValidation", mock.Anything).Return(revokedResult)

	m, term, logger := newTestManager(t, v, time.Hour)

	m.RunOnce(context.Background())
	m.RunOnce(context.Background())
	m.RunOnce(context.Background())

	assert.False(t, m.Licensed())
	assert.Equal(t, []string{"license revoked"}, term.get())
	assert.True(t, logger.Contains("ERROR", "license revoked"))
}

func TestSeed(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(offlineResult).Once()

	m, term, _ := newTestManager(t, v, time.Hour)

	m.Seed("ABC-123", validResult)
	assert.True(t, m.Licensed())

	m.RunOnce(context.Background())

	assert.True(t, m.Licensed(), "seeded result covers an offline check")
	assert.Empty(t, term.get())
}

func TestStart_TicksAndShutdown(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(validResult)

	m, _, _ := newTestManager(t, v, 20*time.Millisecond)

	m.Start(context.Background())
	m.Start(context.Background())
	assert.True(t, m.Running())

	assert.Eventually(t, func() bool {
		return !m.LastSuccess().IsZero()
	}, 2*time.Second, 10*time.Millisecond)

	m.Shutdown()
	m.Wait()

	assert.False(t, m.Running())
}

func TestStart_StopsAfterTermination(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(revokedResult)

	m, term, _ := newTestManager(t, v, 20*time.Millisecond)

	m.Start(context.Background())

	assert.Eventually(t, func() bool {
		return len(term.get()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	m.Wait()

	assert.False(t, m.Running())
	assert.Len(t, term.get(), 1)
}

func TestRunOnce_NoActiveKeySkipsValidation(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("")

	m, term, _ := newTestManager(t, v, time.Hour)

	res := m.RunOnce(context.Background())

	assert.False(t, res.Valid)
	assert.Empty(t, term.get())
	v.AssertNotCalled(t, "PeriodicValidation", mock.Anything)
}

func TestRunOnce_CancelledDuringValidationIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(offlineResult).Once()

	m, term, _ := newTestManager(t, v, time.Hour)
	m.Seed("ABC-123", validResult)

	m.RunOnce(ctx)

	assert.Empty(t, term.get())
	assert.True(t, m.Licensed())
	assert.Equal(t, validResult, m.LastResult())
}

func TestRunOnce_KeyClearedDuringValidationIsDiscarded(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123").Once()
	v.On("LicenseKey").Return("")
	v.On("PeriodicValidation", mock.Anything).Return(offlineResult).Once()

	m, term, _ := newTestManager(t, v, time.Hour)

	m.RunOnce(context.Background())

	assert.Empty(t, term.get())
	v.AssertExpectations(t)
}

func TestStart_HandlerMayWaitForScheduler(t *testing.T) {
	v := &mockValidator{}
	v.On("LicenseKey").Return("ABC-123")
	v.On("PeriodicValidation", mock.Anything).Return(revokedResult)

	logger := testlogger.New()

	c, err := cache.New(logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	var m *Manager

	returned := make(chan struct{})
	sm := shutdown.New()
	sm.SetHandler(func(string) {
		m.Shutdown()
		m.Wait()
		close(returned)
	})

	m = New(v, 20*time.Millisecond, c, sm, logger)
	m.Start(context.Background())

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait called from the termination handler did not return")
	}

	assert.False(t, m.Running())
}
