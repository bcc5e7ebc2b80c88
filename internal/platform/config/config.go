package config

import (
	"fmt"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string

	// Chart-of-codes digit convention. Historical and format-fragile, so it
	// is configurable rather than hardcoded.
	GroupCodeLength   int
	GeneralCodeLength int

	// AllowClosedYearPosting permits posting journals dated inside an
	// already-closed fiscal year. Default is strict.
	AllowClosedYearPosting bool

	ShutdownTimeout time.Duration
}

// CodeFormat returns the configured chart-of-codes digit convention.
func (c *Config) CodeFormat() domain.CodeFormat {
	return domain.CodeFormat{GroupLen: c.GroupCodeLength, GeneralLen: c.GeneralCodeLength}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("GROUP_CODE_LENGTH", 2)
	viper.SetDefault("GENERAL_CODE_LENGTH", 4)
	viper.SetDefault("ALLOW_CLOSED_YEAR_POSTING", false)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:         viper.GetString("MIGRATIONS_PATH"),
		GroupCodeLength:        viper.GetInt("GROUP_CODE_LENGTH"),
		GeneralCodeLength:      viper.GetInt("GENERAL_CODE_LENGTH"),
		AllowClosedYearPosting: viper.GetBool("ALLOW_CLOSED_YEAR_POSTING"),
		ShutdownTimeout:        viper.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable is required")
	}
	if cfg.GroupCodeLength <= 0 || cfg.GeneralCodeLength <= cfg.GroupCodeLength {
		return nil, fmt.Errorf("invalid code length configuration: group=%d general=%d",
			cfg.GroupCodeLength, cfg.GeneralCodeLength)
	}

	return cfg, nil
}
