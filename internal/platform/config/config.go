package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	StoreDriver    string
	DatabaseURL    string
	MigrationsPath string

	DefaultWalletBalance     decimal.Decimal
	RecentTransactionsWindow int

	NotifierQueueSize       int
	NotifierDeliveryTimeout time.Duration

	CORSAllowedOrigins []string
	LoginRateLimit     string
	TradeRateLimit     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "carbonx-exchange")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DEFAULT_WALLET_BALANCE", "2500000")
	v.SetDefault("RECENT_TRANSACTIONS_WINDOW", 50)
	v.SetDefault("NOTIFIER_QUEUE_SIZE", 256)
	v.SetDefault("NOTIFIER_DELIVERY_TIMEOUT", "5s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("TRADE_RATE_LIMIT", "60-M")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		StoreDriver:        strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		NotifierQueueSize:  v.GetInt("NOTIFIER_QUEUE_SIZE"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		TradeRateLimit:     v.GetString("TRADE_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		RecentTransactionsWindow: v.GetInt("RECENT_TRANSACTIONS_WINDOW"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set. Using default insecure key.")
	}

	expiryStr := v.GetString("JWT_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil || expiry <= 0 {
		expiry = time.Hour
		slog.Warn("Invalid JWT_EXPIRY_DURATION, using default",
			slog.String("value", expiryStr), slog.String("default", expiry.String()))
	}
	cfg.JWTExpiryDuration = expiry

	switch cfg.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreDriverMemory, StoreDriverPostgres)
	}

	balance, err := decimal.NewFromString(v.GetString("DEFAULT_WALLET_BALANCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_WALLET_BALANCE: %w", err)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("DEFAULT_WALLET_BALANCE cannot be negative")
	}
	cfg.DefaultWalletBalance = balance

	if cfg.RecentTransactionsWindow <= 0 {
		return nil, fmt.Errorf("RECENT_TRANSACTIONS_WINDOW must be positive")
	}

	timeoutStr := v.GetString("NOTIFIER_DELIVERY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid NOTIFIER_DELIVERY_TIMEOUT %q", timeoutStr)
	}
	cfg.NotifierDeliveryTimeout = timeout

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
