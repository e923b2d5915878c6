package cache

import (
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
)

// Manager remembers the last good validation result per license key
type Manager struct {
	cache  *ristretto.Cache[string, model.ValidationResult]
	ttl    time.Duration
	logger log.Logger
}

// New creates a new cache manager with the default TTL
func New(logger log.Logger) (*Manager, error) {
	return NewWithTTL(constant.CacheTTL, logger)
}

// NewWithTTL creates a new cache manager whose entries expire after ttl
func NewWithTTL(ttl time.Duration, logger log.Logger) (*Manager, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, model.ValidationResult]{
		NumCounters: constant.CacheNumCounters,
		MaxCost:     constant.CacheMaxCost,
		BufferItems: constant.CacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Manager{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get retrieves the last good validation result for a license key
func (m *Manager) Get(licenseKey string) (model.ValidationResult, bool) {
	result, found := m.cache.Get(licenseKey)
	if !found || !result.Valid {
		return model.ValidationResult{}, false
	}

	m.logger.Debugf("Using cached license validation [message: %s]", result.Message)

	return result, true
}

// Store caches a valid result with a fixed TTL. Invalid results are never cached.
func (m *Manager) Store(licenseKey string, result model.ValidationResult) {
	if !result.Valid {
		return
	}

	m.cache.SetWithTTL(licenseKey, result, 1, m.ttl)
	m.cache.Wait()

	m.logger.Debugf("Stored license validation result [ttl: %s]", m.ttl)
}

// Forget drops the cached result for a license key
func (m *Manager) Forget(licenseKey string) {
	m.cache.Del(licenseKey)
}

// Close releases the cache
func (m *Manager) Close() {
	m.cache.Close()
}
