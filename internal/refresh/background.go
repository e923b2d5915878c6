package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/internal/cache"
	"github.com/gestionpro/lib-license-go/internal/shutdown"
	"github.com/gestionpro/lib-license-go/model"
)

// Validator is the part of the license manager the scheduler drives
type Validator interface {
	PeriodicValidation(ctx context.Context) model.ValidationResult
	LicenseKey() string
}

// Manager owns the timer that periodically re-validates the active license
// and decides what an invalid result means for the host application.
type Manager struct {
	refreshInterval time.Duration
	validator       Validator
	cache           *cache.Manager
	terminator      *shutdown.Manager
	logger          log.Logger

	mu                    sync.Mutex
	started               bool
	cancel                context.CancelFunc
	done                  chan struct{}
	licensed              bool
	lastResult            model.ValidationResult
	lastAttemptedRefresh  time.Time
	lastSuccessfulRefresh time.Time
}

// New creates a new background refresh manager
func New(validator Validator, refreshInterval time.Duration, c *cache.Manager, terminator *shutdown.Manager, logger log.Logger) *Manager {
	return &Manager{
		validator:       validator,
		refreshInterval: refreshInterval,
		cache:           c,
		terminator:      terminator,
		logger:          logger,
	}
}

// Start begins the periodic validation. Calling it again while running does nothing.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.started = true
	m.mu.Unlock()

	ticker := time.NewTicker(m.refreshInterval)

	go func() {
		reason, terminate := m.loop(refreshCtx, ticker)

		// done is closed before the handler runs so that a handler may call
		// Wait, directly or through the host's own shutdown path.
		close(done)

		if terminate {
			m.terminator.Terminate(reason)
		}
	}()
}

func (m *Manager) loop(ctx context.Context, ticker *time.Ticker) (string, bool) {
	defer ticker.Stop()

	m.logger.Infof("Starting periodic license validation every %s", m.refreshInterval)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Periodic license validation stopped")
			return "", false

		case <-ticker.C:
			if result, terminate := m.check(ctx); terminate {
				return result.Message, true
			}
		}
	}
}

// Shutdown stops the periodic validation
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.started = false
	m.logger.Info("Periodic license validation shutdown complete")
}

// Wait blocks until the timer goroutine started by the last Start has stopped
// validating. It returns before a termination handler fired by that goroutine
// completes.
func (m *Manager) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether the timer is active
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.started
}

// Seed records a result obtained outside the timer, such as the activation
// or startup validation, without triggering termination.
func (m *Manager) Seed(licenseKey string, result model.ValidationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastResult = result
	m.licensed = result.Valid

	if result.Valid {
		m.lastSuccessfulRefresh = time.Now()
		m.cache.Store(licenseKey, result)
	}
}

// RunOnce performs one periodic validation and applies its outcome:
// a valid result is cached; an offline failure is tolerated while a cached
// good result exists; anything else stops the timer and terminates.
// Results that arrive after a cancellation or a key change are discarded.
func (m *Manager) RunOnce(ctx context.Context) model.ValidationResult {
	result, terminate := m.check(ctx)
	if terminate {
		m.terminator.Terminate(result.Message)
	}

	return result
}

// check validates once and reports whether the outcome must terminate
func (m *Manager) check(ctx context.Context) (model.ValidationResult, bool) {
	m.mu.Lock()
	m.lastAttemptedRefresh = time.Now()
	m.mu.Unlock()

	licenseKey := m.validator.LicenseKey()
	if licenseKey == "" {
		m.logger.Debug("No active license, periodic validation skipped")

		return model.ValidationResult{Valid: false, Message: cn.NoActiveLicenseMessage}, false
	}

	result := m.validator.PeriodicValidation(ctx)

	if ctx.Err() != nil || m.validator.LicenseKey() != licenseKey {
		m.logger.Debug("Periodic license validation interrupted, result discarded")

		return result, false
	}

	if result.Valid {
		m.mu.Lock()
		m.lastResult = result
		m.licensed = true
		m.lastSuccessfulRefresh = time.Now()
		m.mu.Unlock()

		m.cache.Store(licenseKey, result)
		m.logger.Info("Periodic license validation successful")

		return result, false
	}

	if result.Offline() {
		if cached, found := m.cache.Get(licenseKey); found {
			m.logger.Warnf("License server unreachable, keeping last good validation - error: %s", result.Error)

			m.mu.Lock()
			m.lastResult = result
			m.licensed = cached.Valid
			m.mu.Unlock()

			return result, false
		}
	}

	m.mu.Lock()
	m.lastResult = result
	m.licensed = false
	m.mu.Unlock()

	m.cache.Forget(licenseKey)
	m.logger.Errorf("Periodic license validation failed: %s", result.Message)

	m.Shutdown()

	return result, true
}

// Licensed reports whether licensed features may be used right now
func (m *Manager) Licensed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.licensed
}

// LastResult returns the outcome of the latest validation
func (m *Manager) LastResult() model.ValidationResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastResult
}

// LastAttempt returns when the timer last tried to validate
func (m *Manager) LastAttempt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastAttemptedRefresh
}

// LastSuccess returns when a validation last succeeded
func (m *Manager) LastSuccess() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastSuccessfulRefresh
}
