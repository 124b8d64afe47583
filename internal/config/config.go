package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	Env          string
	DatabasePath string
	HTTPAddr     string

	// Store recommendation service (optional; lookups are disabled when unset)
	StoreAPIURL string
	StoreAPIKey string

	// Default planning horizon in days when the profile does not carry one.
	DefaultTimeframe int
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	dbPath := os.Getenv("NUTRIPLAN_DB_PATH")
	if dbPath == "" {
		dbPath = "data/nutriplan.db"
	}

	httpAddr := os.Getenv("NUTRIPLAN_HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	timeframe := 7
	if raw := os.Getenv("NUTRIPLAN_DEFAULT_TIMEFRAME"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid NUTRIPLAN_DEFAULT_TIMEFRAME %q", raw)
		}
		timeframe = parsed
	}

	return &Config{
		Env:              env,
		DatabasePath:     dbPath,
		HTTPAddr:         httpAddr,
		StoreAPIURL:      os.Getenv("STORE_API_URL"),
		StoreAPIKey:      os.Getenv("STORE_API_KEY"),
		DefaultTimeframe: timeframe,
	}, nil
}
