// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresDSN string

	// Upstream theme-park API
	ThemeParksBaseURL string
	HTTPTimeout       time.Duration

	// Sync intervals
	FullSyncInterval         time.Duration
	ParkStatusInterval       time.Duration
	WaitTimeInterval         time.Duration
	AttractionStatusInterval time.Duration
	LocationInterval         time.Duration

	// Geocoding rate limits
	GeocodeBatchSize  int
	GeocodeBatchDelay time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "2.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=parksync port=5432 sslmode=disable"),

		ThemeParksBaseURL: getEnv("THEMEPARKS_BASE_URL", "https://api.themeparks.wiki/v1"),
		HTTPTimeout:       time.Duration(getEnvAsInt("HTTP_TIMEOUT", 10)) * time.Second,

		FullSyncInterval:         time.Duration(getEnvAsInt("FULL_SYNC_INTERVAL_MINUTES", 720)) * time.Minute,
		ParkStatusInterval:       time.Duration(getEnvAsInt("PARK_STATUS_INTERVAL_MINUTES", 5)) * time.Minute,
		WaitTimeInterval:         time.Duration(getEnvAsInt("WAIT_TIME_INTERVAL_MINUTES", 10)) * time.Minute,
		AttractionStatusInterval: time.Duration(getEnvAsInt("ATTRACTION_STATUS_INTERVAL_MINUTES", 5)) * time.Minute,
		LocationInterval:         time.Duration(getEnvAsInt("LOCATION_INTERVAL_HOURS", 168)) * time.Hour,

		GeocodeBatchSize:  getEnvAsInt("GEOCODE_BATCH_SIZE", 5),
		GeocodeBatchDelay: time.Duration(getEnvAsInt("GEOCODE_BATCH_DELAY_MS", 1000)) * time.Millisecond,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
