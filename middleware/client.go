package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/internal/cache"
	"github.com/gestionpro/lib-license-go/internal/refresh"
	"github.com/gestionpro/lib-license-go/internal/shutdown"
	"github.com/gestionpro/lib-license-go/license"
	"github.com/gestionpro/lib-license-go/model"
	"github.com/gestionpro/lib-license-go/pkg"
	"github.com/gestionpro/lib-license-go/store"
)

// LicenseClient is the public client API that exposes middleware functionality.
// It wires the license manager to the key store, the periodic scheduler and
// the termination policy.
type LicenseClient struct {
	manager    *license.Manager
	store      *store.FileStore
	cache      *cache.Manager
	refresher  *refresh.Manager
	terminator *shutdown.Manager
	logger     log.Logger

	// initOnce ensures startup validation happens only once
	// even when both HTTP middleware and gRPC interceptors are used
	initOnce      sync.Once
	startupResult model.ValidationResult

	closeOnce sync.Once
}

// NewLicenseClient creates a new license client with middleware capabilities.
// A nil logger falls back to the lib-commons zap logger.
func NewLicenseClient(cfg model.Config, logger log.Logger, opts ...license.Option) (*LicenseClient, error) {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	manager, err := license.NewFromModel(cfg, append([]license.Option{license.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(logger)
	if err != nil {
		return nil, err
	}

	clientConfig := manager.Config()
	terminator := shutdown.New()

	return &LicenseClient{
		manager:    manager,
		store:      store.NewFileStore(clientConfig.LicenseFile, logger),
		cache:      c,
		refresher:  refresh.New(manager, clientConfig.RefreshInterval, c, terminator, logger),
		terminator: terminator,
		logger:     logger,
	}, nil
}

// Bootstrap restores the license stored by a previous activation. The stored
// key is validated first and only becomes active when the server accepts it,
// after which periodic validation starts. It runs once; later calls return
// the first result.
func (c *LicenseClient) Bootstrap(ctx context.Context) model.ValidationResult {
	c.initOnce.Do(func() {
		c.startupResult = c.bootstrap(ctx)
	})

	return c.startupResult
}

func (c *LicenseClient) bootstrap(ctx context.Context) model.ValidationResult {
	machineID := c.manager.Identity().MachineID

	stored, err := c.store.Load(machineID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoStoredLicense):
			c.logger.Info("No stored license found, waiting for activation")
		case errors.Is(err, store.ErrMachineMismatch):
			c.logger.Warn("Stored license was activated on another machine and is ignored")
		default:
			c.logger.Errorf("Failed to load stored license: %v", err)
		}

		result := model.ValidationResult{Valid: false, Message: cn.NoLicenseToValidateMessage}
		c.refresher.Seed("", result)

		return result
	}

	result := c.manager.Validate(ctx, stored.LicenseKey)
	c.refresher.Seed(stored.LicenseKey, result)

	if !result.Valid {
		c.logger.Errorf("LICENSE INVALID: stored license was rejected - %s", result.Message)

		return result
	}

	c.manager.Restore(stored.LicenseKey)
	c.refresher.Start(context.WithoutCancel(ctx))

	c.logger.Info("Stored license validated, periodic validation started")

	return result
}

// Activate activates licenseKey on this machine. On success the key is
// persisted and periodic validation (re)starts.
func (c *LicenseClient) Activate(ctx context.Context, licenseKey string) model.ActivationResult {
	result := c.manager.Activate(ctx, licenseKey)
	if !result.Success {
		return result
	}

	if err := c.store.Save(model.StoredLicense{
		LicenseKey:  licenseKey,
		MachineID:   c.manager.Identity().MachineID,
		ActivatedAt: time.Now().UTC(),
	}); err != nil {
		c.logger.Errorf("License activated but could not be persisted: %v", err)
	}

	c.terminator.Reset()
	c.refresher.Seed(licenseKey, model.ValidationResult{Valid: true, Message: result.Message, Data: result.Data})
	c.refresher.Start(context.WithoutCancel(ctx))

	return result
}

// Deactivate forgets the active license locally, stops periodic validation
// and removes the stored key. Nothing is sent to the server. A validation in
// flight is abandoned and its outcome ignored.
func (c *LicenseClient) Deactivate() error {
	c.refresher.Shutdown()
	c.refresher.Wait()

	key := c.manager.LicenseKey()

	c.manager.Deactivate()
	c.cache.Forget(key)
	c.refresher.Seed("", model.ValidationResult{Valid: false, Message: cn.NoActiveLicenseMessage})

	return c.store.Clear()
}

// Validate re-validates the active license, or override when given
func (c *LicenseClient) Validate(ctx context.Context, override string) model.ValidationResult {
	return c.manager.Validate(ctx, override)
}

// Licensed reports whether licensed features may be used right now
func (c *LicenseClient) Licensed() bool {
	return c.checkLicense() == nil
}

// checkLicense returns the business error explaining why licensed features
// are refused, or nil when they may be used.
func (c *LicenseClient) checkLicense() error {
	if !c.manager.HasLicense() {
		return pkg.ValidateBusinessError(cn.ErrNoActiveLicense, "License")
	}

	if c.refresher.Licensed() {
		return nil
	}

	last := c.refresher.LastResult()
	if last.Offline() {
		return pkg.ValidateBusinessError(cn.ErrLicenseValidationFail, "License", last.Message)
	}

	return pkg.ValidateBusinessError(cn.ErrLicenseInvalid, "License", last.Message)
}

// GetMachineInfo returns the identity of this machine with live OS details
func (c *LicenseClient) GetMachineInfo() model.MachineInfo {
	return c.manager.GetMachineInfo()
}

// CheckServerHealth reports whether the license server answers its health check
func (c *LicenseClient) CheckServerHealth(ctx context.Context) bool {
	return c.manager.CheckServerHealth(ctx)
}

// LicenseKey returns the active license key, if any. Activation goes through
// Activate so that the key is persisted and periodically re-validated.
func (c *LicenseClient) LicenseKey() string {
	return c.manager.LicenseKey()
}

// Identity returns the machine identity the license is bound to
func (c *LicenseClient) Identity() model.MachineIdentity {
	return c.manager.Identity()
}

// SetTerminationHandler allows customizing how the application terminates when license validation fails.
// The handler runs after periodic validation has stopped; it may call Close or Deactivate.
func (c *LicenseClient) SetTerminationHandler(handler func(reason string)) {
	c.terminator.SetHandler(handler)
}

// ShutdownBackgroundRefresh stops the background refresh process
func (c *LicenseClient) ShutdownBackgroundRefresh() {
	c.refresher.Shutdown()
}

// Close stops the background refresh and releases the validation cache.
// Later calls do nothing.
func (c *LicenseClient) Close() {
	c.closeOnce.Do(func() {
		c.refresher.Shutdown()
		c.refresher.Wait()
		c.cache.Close()
	})
}

// GetLogger returns the logger used by the client
func (c *LicenseClient) GetLogger() log.Logger {
	return c.logger
}

// startupValidation performs common validation steps for both HTTP and gRPC
func (c *LicenseClient) startupValidation() {
	c.Bootstrap(context.Background())
}
