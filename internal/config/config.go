package config

import (
	"os"
	"strconv"
)

// Config holds the runtime configuration for the dashboard core.
type Config struct {
	Storage struct {
		// Path of the local SQLite file the state blob lives in.
		Path string
	}

	Timeline struct {
		// Rolling window: PastDays back through FutureDays ahead.
		PastDays   int
		FutureDays int
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Storage.Path = getEnv("PROPTRACK_DB_PATH", "proptrack.db")

	cfg.Timeline.PastDays = getEnvInt("TIMELINE_PAST_DAYS", 7)
	cfg.Timeline.FutureDays = getEnvInt("TIMELINE_FUTURE_DAYS", 90)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "console")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
