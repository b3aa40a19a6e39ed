package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// RateLimit is the request rate limit in ulule/limiter notation,
	// e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// DBMaxConns caps the pgx connection pool size.
	DBMaxConns int32

	// StorageBaseCurrency is the currency all persisted rate history is
	// quoted against.
	StorageBaseCurrency string

	// RateRefreshInterval is how often the background job pulls yesterday's
	// rates for every configured currency.
	RateRefreshInterval time.Duration

	// ProviderTimeout bounds each HTTP call against an upstream provider.
	ProviderTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("PGSQL_MAX_CONNS", 10)
	viper.SetDefault("STORAGE_BASE_CURRENCY", "EUR")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "24h")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.DBMaxConns = viper.GetInt32("PGSQL_MAX_CONNS")
	cfg.StorageBaseCurrency = viper.GetString("STORAGE_BASE_CURRENCY")

	refreshStr := viper.GetString("RATE_REFRESH_INTERVAL")
	refreshInterval, err := time.ParseDuration(refreshStr)
	if err != nil {
		refreshInterval = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshStr, refreshInterval)
	}
	cfg.RateRefreshInterval = refreshInterval

	timeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, providerTimeout)
	}
	cfg.ProviderTimeout = providerTimeout

	return cfg, nil
}
