package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rentspot", cfg.App.Name)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 300, cfg.Redis.SpotTTLSec)
	assert.Equal(t, "review.changed", cfg.RabbitMQ.RoutingKey.ReviewChanged)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "http://localhost:8000", cfg.Client.BaseURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RENTSPOT_APP_PORT", "9090")
	t.Setenv("RENTSPOT_LOG_LEVEL", "debug")
	t.Setenv("RENTSPOT_CLIENT_BASEURL", "http://api.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://api.example.com", cfg.Client.BaseURL)
}

func TestClientCfg_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, ClientCfg{}.Timeout())
	assert.Equal(t, 5*time.Second, ClientCfg{TimeoutSec: 5}.Timeout())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		pepper  string
		wantErr error
	}{
		{name: "local with default pepper", env: "local", pepper: DefaultCSRFPepper},
		{name: "production with default pepper", env: "production", pepper: DefaultCSRFPepper, wantErr: ErrDefaultCSRFPepper},
		{name: "production with empty pepper", env: "production", pepper: "", wantErr: ErrDefaultCSRFPepper},
		{name: "production with own pepper", env: "production", pepper: "s3cr3t-pepper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{App: AppCfg{Env: tt.env}, CSRF: CSRFCfg{Pepper: tt.pepper}}
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
