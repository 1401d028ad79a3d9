package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	CatalogPath string // empty means the embedded Kingston seed
	Location    *time.Location

	SensorFeedURL      string
	SensorPollInterval time.Duration
	SensorAMQPURL      string
	SensorQueue        string

	DriftSchedule string // cron spec, empty disables simulated drift
	Debug         bool
}

// Load reads the environment, after merging a .env file when one exists
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load .env: %v", err)
	}

	tz := getEnv("TIMEZONE", "America/Toronto")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	interval, err := time.ParseDuration(getEnv("SENSOR_POLL_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("parsing SENSOR_POLL_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("SENSOR_POLL_INTERVAL must be positive, got %s", interval)
	}

	debug, err := strconv.ParseBool(getEnv("DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("parsing DEBUG: %w", err)
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		Location:           loc,
		SensorFeedURL:      getEnv("SENSOR_FEED_URL", ""),
		SensorPollInterval: interval,
		SensorAMQPURL:      getEnv("SENSOR_AMQP_URL", ""),
		SensorQueue:        getEnv("SENSOR_QUEUE", "parking.sensors"),
		DriftSchedule:      getEnv("DRIFT_SCHEDULE", "@every 30s"),
		Debug:              debug,
	}, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
