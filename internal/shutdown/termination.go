package shutdown

import "sync"

// Handler reacts to a license that can no longer be used.
// Host applications typically redisplay the activation form or exit.
type Handler func(reason string)

// DefaultHandler panics with a descriptive message
func DefaultHandler(reason string) {
	panic("LICENSE VALIDATION FAILED: " + reason)
}

// Manager handles termination behavior
type Manager struct {
	mu         sync.RWMutex
	handler    Handler
	terminated bool
	reason     string
}

// New creates a new termination manager with the default handler
func New() *Manager {
	return &Manager{
		handler: DefaultHandler,
	}
}

// SetHandler updates the termination handler.
// Call it during startup, before the first periodic validation.
func (m *Manager) SetHandler(handler Handler) {
	if handler == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.handler = handler
}

// Terminate records the reason and invokes the handler, once
func (m *Manager) Terminate(reason string) {
	m.mu.Lock()
	if m.terminated {
		m.mu.Unlock()
		return
	}

	m.terminated = true
	m.reason = reason
	handler := m.handler
	m.mu.Unlock()

	handler(reason)
}

// Terminated reports whether Terminate was called, and with which reason
func (m *Manager) Terminated() (bool, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.terminated, m.reason
}

// Reset clears the terminated state, after a new activation
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.terminated = false
	m.reason = ""
}
