package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ApplyEnv loads .env from the working directory (if present) and overrides
// settings from SMOKE_* and DB_* variables
func (c *Config) ApplyEnv() {
	if err := godotenv.Load(DefaultEnvFile); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	c.BaseURL = getenvDefault("SMOKE_BASE_URL", c.BaseURL)
	c.Email = getenvDefault("SMOKE_EMAIL", c.Email)
	c.Password = getenvDefault("SMOKE_PASSWORD", c.Password)
	c.DummyToken = getenvDefault("SMOKE_DUMMY_TOKEN", c.DummyToken)
	c.RequestTimeout = getDurationWithDefault("SMOKE_REQUEST_TIMEOUT", c.RequestTimeout)
	c.OutputJSONDir = getenvDefault("SMOKE_OUTPUT_DIR", c.OutputJSONDir)

	c.Database.Host = getenvDefault("DB_HOST", c.Database.Host)
	c.Database.Port = getenvDefault("DB_PORT", c.Database.Port)
	c.Database.User = getenvDefault("DB_USERNAME", c.Database.User)
	c.Database.Password = getenvDefault("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getenvDefault("DB_DATABASE", c.Database.Name)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
