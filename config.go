package sdk

import (
	"time"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
)

// LoadFromEnv builds the license client configuration from the environment.
// Unset variables fall back to the library defaults; malformed durations are
// logged and replaced by their default.
func LoadFromEnv(logger log.Logger) model.Config {
	return model.Config{
		ApplicationName: commons.GetenvOrDefault(cn.EnvApplicationName, cn.DefaultApplicationName),
		ServerURL:       commons.GetenvOrDefault(cn.EnvLicenseServerURL, cn.DefaultLicenseServerBaseURL),
		LicenseFile:     commons.GetenvOrDefault(cn.EnvLicenseFile, cn.DefaultLicenseFile),
		HTTPTimeout:     durationFromEnv(cn.EnvLicenseTimeout, cn.DefaultHTTPTimeout, logger),
		RefreshInterval: durationFromEnv(cn.EnvRefreshInterval, cn.DefaultRefreshInterval, logger),
	}
}

func durationFromEnv(key string, fallback time.Duration, logger log.Logger) time.Duration {
	raw := commons.GetenvOrDefault(key, "")
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warnf("Invalid duration %q in %s, using %s", raw, key, fallback)

		return fallback
	}

	return d
}
