// Package config loads service configuration from environment variables,
// with a .env file as an optional local override source.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the service.
type AppConfig struct {
	Port        string
	DBPath      string
	LogLevel    string
	Environment string
	CronSpec    string // Risk snapshot refresh schedule
	CORSOrigins []string
}

// Load reads configuration from environment variables and .env file (if
// present). Every setting has a working default; nothing is required.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables, and a missing
	// .env file is not an error.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.DBPath = os.Getenv("DB_PATH")
	if cfg.DBPath == "" {
		cfg.DBPath = "./compliance.db"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpec = os.Getenv("CRON_SPEC_RISK_SNAPSHOTS")
	if cfg.CronSpec == "" {
		cfg.CronSpec = "0 * * * *" // Hourly, on the hour
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:8080"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}
