package util

import (
	"testing"

	"github.com/gestionpro/lib-license-go/model"
	"github.com/gestionpro/lib-license-go/test/helper/testlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnvVariables(t *testing.T) {
	valid := model.Config{
		ApplicationName: "billing",
		ServerURL:       "https://licence.example.test/api",
		LicenseFile:     "license.yaml",
	}

	tests := []struct {
		name     string
		mutate   func(*model.Config)
		errCount int
		contains string
	}{
		{"valid", func(*model.Config) {}, 0, ""},
		{"missing application name", func(c *model.Config) { c.ApplicationName = "" }, 1, "application name"},
		{"missing server URL", func(c *model.Config) { c.ServerURL = "" }, 1, "license server URL"},
		{"relative server URL", func(c *model.Config) { c.ServerURL = "licence/api" }, 1, "absolute URL"},
		{"missing license file", func(c *model.Config) { c.LicenseFile = "" }, 1, "license file"},
		{"everything missing", func(c *model.Config) { *c = model.Config{} }, 3, "application name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			logger := testlogger.New()
			err := ValidateEnvVariables(&cfg, logger)

			assert.Equal(t, tt.errCount, logger.Count("ERROR"))

			if tt.errCount == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateEnvVariables_NilConfig(t *testing.T) {
	assert.Error(t, ValidateEnvVariables(nil, testlogger.New()))
}
