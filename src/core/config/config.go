package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// SetupEnv loads environment variables from a .env file when one is present.
// Missing files are fine; production deploys set real environment variables.
func SetupEnv() {
	_ = godotenv.Load(".env")
}

// Config returns the environment variable or defaults to empty string
func Config(key string) string {
	return os.Getenv(key)
}

// ConfigOr returns the environment variable, falling back to def when unset.
func ConfigOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ConfigIntOr returns the environment variable parsed as int, or def when
// unset or unparseable.
func ConfigIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ConfigBool treats "true" and "1" as true, anything else as false.
func ConfigBool(key string) bool {
	v := os.Getenv(key)
	return v == "true" || v == "1"
}

// IsProduction reports whether the app runs with APP_ENV=production. It
// controls the Secure cookie attribute and log verbosity.
func IsProduction() bool {
	return Config("APP_ENV") == "production"
}

// DatabaseDSN assembles the postgres connection string from DB_* variables.
func DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		ConfigOr("DB_HOST", "localhost"),
		ConfigOr("DB_PORT", "5432"),
		ConfigOr("DB_USER", "postgres"),
		Config("DB_PASSWORD"),
		ConfigOr("DB_NAME", "quiz_biblico"),
	)
}
