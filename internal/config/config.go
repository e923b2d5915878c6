package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
)

// ClientConfig holds the configuration for the license client
type ClientConfig struct {
	AppName string // Application name (e.g., "gestionpro")
	BaseURL string

	// Sent as User-Agent: ClientName/ClientVersion
	ClientName    string
	ClientVersion string

	// HTTP configuration
	HTTPTimeout time.Duration

	// Periodic validation configuration
	RefreshInterval time.Duration

	// Where the activated key is persisted
	LicenseFile string
}

// NewDefaultConfig creates a new config with sensible defaults
func NewDefaultConfig() ClientConfig {
	return ClientConfig{
		AppName:         cn.DefaultApplicationName,
		BaseURL:         cn.DefaultLicenseServerBaseURL,
		ClientName:      cn.DefaultClientName,
		ClientVersion:   cn.DefaultClientVersion,
		HTTPTimeout:     cn.DefaultHTTPTimeout,
		RefreshInterval: cn.DefaultRefreshInterval,
		LicenseFile:     cn.DefaultLicenseFile,
	}
}

// Validate checks if the configuration is valid
func (c *ClientConfig) Validate() error {
	if c.AppName == "" {
		return errors.New("application name is required")
	}

	if c.BaseURL == "" {
		return errors.New("license server URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("license server URL must be absolute")
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be positive")
	}

	if c.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}

	return nil
}

// UserAgent returns the User-Agent header value
func (c *ClientConfig) UserAgent() string {
	return c.ClientName + "/" + c.ClientVersion
}

// FromModel converts a model.Config to a ClientConfig, keeping defaults for unset fields
func FromModel(cfg model.Config) (*ClientConfig, error) {
	config := NewDefaultConfig()

	if cfg.ApplicationName != "" {
		config.AppName = cfg.ApplicationName
	}

	if cfg.ServerURL != "" {
		config.BaseURL = strings.TrimSuffix(cfg.ServerURL, "/")
	}

	if cfg.LicenseFile != "" {
		config.LicenseFile = cfg.LicenseFile
	}

	if cfg.HTTPTimeout > 0 {
		config.HTTPTimeout = cfg.HTTPTimeout
	}

	if cfg.RefreshInterval > 0 {
		config.RefreshInterval = cfg.RefreshInterval
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
