// Package license implements activation and validation of a GestionPro
// license against the license server.
//
// Every operation resolves to a result value; none of them returns an error
// or panics. Scheduling periodic checks and persisting the activated key are
// left to the caller.
package license

import (
	"context"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/gestionpro/lib-license-go/internal/api"
	"github.com/gestionpro/lib-license-go/internal/config"
	"github.com/gestionpro/lib-license-go/internal/identity"
	"github.com/gestionpro/lib-license-go/model"
)

// Requester performs one exchange with the license server
type Requester interface {
	Request(ctx context.Context, method, path string, body any) (model.Response, error)
}

// Manager activates and validates the license of this machine
type Manager struct {
	config     *config.ClientConfig
	requester  Requester
	httpClient api.Doer
	facts      identity.FactsSource
	identity   model.MachineIdentity
	logger     log.Logger
	now        func() time.Time

	// opMu serializes Activate, Validate and PeriodicValidation
	opMu sync.Mutex

	keyMu      sync.RWMutex
	licenseKey string
}

// Option customizes a Manager
type Option func(*Manager)

// WithLogger sets the logger. Defaults to the lib-commons zap logger.
func WithLogger(logger log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client used to reach the license server
func WithHTTPClient(client api.Doer) Option {
	return func(m *Manager) {
		m.httpClient = client
	}
}

// WithRequester replaces the whole transport
func WithRequester(r Requester) Option {
	return func(m *Manager) {
		m.requester = r
	}
}

// WithFactsSource replaces the OS facts the identity is derived from
func WithFactsSource(src identity.FactsSource) Option {
	return func(m *Manager) {
		if src != nil {
			m.facts = src
		}
	}
}

// WithClock replaces the clock used for activation timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Manager. The machine identity is computed here, once.
func New(cfg *config.ClientConfig, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		config: cfg,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = zap.InitializeLogger()
	}

	if m.facts == nil {
		m.facts = identity.NewSystemSource(m.logger)
	}

	if m.requester == nil {
		m.requester = api.New(cfg, m.httpClient, m.logger)
	}

	m.identity = identity.Generate(m.facts.Facts())

	m.logger.Debugf("License manager ready for machine %s", m.identity.MachineID)

	return m, nil
}

// NewFromModel creates a Manager from host-level settings, applying defaults
// for every field left empty.
func NewFromModel(cfg model.Config, opts ...Option) (*Manager, error) {
	clientConfig, err := config.FromModel(cfg)
	if err != nil {
		return nil, err
	}

	return New(clientConfig, opts...)
}

// Identity returns the machine identity computed at construction
func (m *Manager) Identity() model.MachineIdentity {
	return m.identity
}

// LicenseKey returns the key stored by the last successful activation, if any
func (m *Manager) LicenseKey() string {
	m.keyMu.RLock()
	defer m.keyMu.RUnlock()

	return m.licenseKey
}

// HasLicense reports whether a license key is currently active
func (m *Manager) HasLicense() bool {
	return m.LicenseKey() != ""
}

// Deactivate forgets the active license key. Nothing is sent to the server.
func (m *Manager) Deactivate() {
	m.setLicenseKey("")
	m.logger.Info("License key cleared")
}

// Restore makes a previously activated key the active one without contacting
// the server. Callers are expected to have validated it first.
func (m *Manager) Restore(licenseKey string) {
	m.setLicenseKey(licenseKey)
	m.logger.Debug("License key restored")
}

// Config returns the configuration the manager was built with
func (m *Manager) Config() config.ClientConfig {
	return *m.config
}

func (m *Manager) setLicenseKey(key string) {
	m.keyMu.Lock()
	defer m.keyMu.Unlock()

	m.licenseKey = key
}

// GetMachineInfo returns the identity with live OS details. No network call.
func (m *Manager) GetMachineInfo() model.MachineInfo {
	facts := m.facts.Facts()

	return model.MachineInfo{
		MachineID:           m.identity.MachineID,
		HardwareFingerprint: m.identity.HardwareFingerprint,
		Hostname:            facts.Hostname,
		Platform:            facts.Platform,
		Arch:                facts.Arch,
		CPUs:                facts.CPUCount,
		TotalMemoryGB:       roundGigabytes(facts.TotalMemory),
		ProtectedOSID:       m.facts.ProtectedOSID(m.config.AppName),
	}
}
