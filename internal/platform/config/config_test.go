package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "2500000", cfg.DefaultWalletBalance.String())
	assert.Equal(t, 50, cfg.RecentTransactionsWindow)
	assert.Equal(t, 256, cfg.NotifierQueueSize)
	assert.Equal(t, 5*time.Second, cfg.NotifierDeliveryTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"STORE_DRIVER":         " Postgres ",
		"PGSQL_URL":            "postgres://localhost/carbonx",
		"JWT_EXPIRY_DURATION":  "15m",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
	}))

	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
	}{
		{"postgres without url", map[string]any{"STORE_DRIVER": "postgres"}, "PGSQL_URL"},
		{"unknown driver", map[string]any{"STORE_DRIVER": "redis"}, "unknown STORE_DRIVER"},
		{"bad balance", map[string]any{"DEFAULT_WALLET_BALANCE": "lots"}, "DEFAULT_WALLET_BALANCE"},
		{"negative balance", map[string]any{"DEFAULT_WALLET_BALANCE": "-1"}, "DEFAULT_WALLET_BALANCE"},
		{"zero window", map[string]any{"RECENT_TRANSACTIONS_WINDOW": 0}, "RECENT_TRANSACTIONS_WINDOW"},
		{"bad timeout", map[string]any{"NOTIFIER_DELIVERY_TIMEOUT": "soon"}, "NOTIFIER_DELIVERY_TIMEOUT"},
		{"default secret in production", map[string]any{"IS_PRODUCTION": true}, "JWT_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.overrides))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromViper_InvalidExpiryFallsBack(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"JWT_EXPIRY_DURATION": "forever"}))

	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}
