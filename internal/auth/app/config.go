package app

import (
	"os"
	"strconv"
	"time"
)

const (
	// identityProductionURL is the managed identity provider endpoint.
	identityProductionURL = "https://identitytoolkit.googleapis.com"

	// identityEmulatorURL is where the local emulator listens by default.
	identityEmulatorURL = "http://localhost:9099/identitytoolkit.googleapis.com"
)

type Config struct {
	APIKey      string // Required: API key sent to the identity provider
	IdentityURL string // Optional: identity provider base URL (default depends on Env)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./gatehouse.db)
	Env                 string        // Environment (development, production) (default: development)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		APIKey:              os.Getenv("GATEHOUSE_API_KEY"),
		IdentityURL:         os.Getenv("GATEHOUSE_IDENTITY_URL"),
		DatabaseFile:        getEnvOrDefault("GATEHOUSE_DATABASE_FILE", "gatehouse.db"),
		Env:                 getEnvOrDefault("ENV", "development"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Development talks to the local emulator unless pointed elsewhere.
	if cfg.IdentityURL == "" {
		if cfg.Env == "development" {
			cfg.IdentityURL = getEnvOrDefault("GATEHOUSE_EMULATOR_URL", identityEmulatorURL)
		} else {
			cfg.IdentityURL = identityProductionURL
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
