package config

import (
	"testing"
	"time"

	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, cn.DefaultLicenseServerBaseURL, cfg.BaseURL)
	assert.Equal(t, "GestionPro-License-Client/1.0.0", cfg.UserAgent())
	require.NoError(t, cfg.Validate())
}

func TestFromModel(t *testing.T) {
	tests := []struct {
		name    string
		in      model.Config
		wantErr string
		check   func(t *testing.T, cfg *ClientConfig)
	}{
		{
			name: "defaults kept for unset fields",
			in:   model.Config{},
			check: func(t *testing.T, cfg *ClientConfig) {
				assert.Equal(t, cn.DefaultApplicationName, cfg.AppName)
				assert.Equal(t, cn.DefaultHTTPTimeout, cfg.HTTPTimeout)
			},
		},
		{
			name: "overrides applied and trailing slash trimmed",
			in: model.Config{
				ApplicationName: "caisse",
				ServerURL:       "http://localhost:8080/api/",
				HTTPTimeout:     time.Second,
				RefreshInterval: time.Minute,
			},
			check: func(t *testing.T, cfg *ClientConfig) {
				assert.Equal(t, "caisse", cfg.AppName)
				assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
				assert.Equal(t, time.Second, cfg.HTTPTimeout)
				assert.Equal(t, time.Minute, cfg.RefreshInterval)
			},
		},
		{
			name:    "relative URL rejected",
			in:      model.Config{ServerURL: "licence/api"},
			wantErr: "license server URL must be absolute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromModel(tt.in)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
