package util

import (
	"errors"
	"net/url"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/gestionpro/lib-license-go/model"
)

// ValidateEnvVariables checks the settings a license client cannot run without
// and logs every missing one.
func ValidateEnvVariables(cfg *model.Config, l log.Logger) error {
	if cfg == nil {
		return errors.New("license client config is nil")
	}

	var errs []error

	if commons.IsNilOrEmpty(&cfg.ApplicationName) {
		err := errors.New("missing application name environment variable")

		l.Error(err.Error())

		errs = append(errs, err)
	}

	if commons.IsNilOrEmpty(&cfg.ServerURL) {
		err := errors.New("missing license server URL environment variable")

		l.Error(err.Error())

		errs = append(errs, err)
	} else if u, parseErr := url.Parse(cfg.ServerURL); parseErr != nil || u.Scheme == "" || u.Host == "" {
		err := errors.New("license server URL environment variable must be an absolute URL")

		l.Error(err.Error())

		errs = append(errs, err)
	}

	if commons.IsNilOrEmpty(&cfg.LicenseFile) {
		err := errors.New("missing license file environment variable")

		l.Error(err.Error())

		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
