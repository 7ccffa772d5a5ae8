// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the careers service.
type Config struct {
	Port          string
	GRPCPort      string
	DatabaseURL   string
	RedisURL      string
	SettingsPath  string
	SearchBaseURL string // overrides the URL derived from corpToken/swimlane
	SessionTTL    time.Duration
	CacheTTL      time.Duration
	WarmInterval  time.Duration
	MaxResumeSize int64 // bytes
	CORSOrigins   []string
}

// Load reads environment variables (after merging an optional .env file)
// and returns a validated Config.
func Load() (*Config, error) {
	// A missing .env is fine: production injects real env vars.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	sessionHours, err := positiveInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cacheMinutes, err := positiveInt("CACHE_TTL_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	warmMinutes, err := positiveInt("WARM_INTERVAL_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	maxResumeMB, err := positiveInt("MAX_RESUME_MB", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          envOr("CAREERS_PORT", "8083"),
		GRPCPort:      envOr("CAREERS_GRPC_PORT", "9093"),
		DatabaseURL:   dbURL,
		RedisURL:      redisURL,
		SettingsPath:  envOr("SETTINGS_PATH", "app.json"),
		SearchBaseURL: os.Getenv("SEARCH_BASE_URL"),
		SessionTTL:    time.Duration(sessionHours) * time.Hour,
		CacheTTL:      time.Duration(cacheMinutes) * time.Minute,
		WarmInterval:  time.Duration(warmMinutes) * time.Minute,
		MaxResumeSize: int64(maxResumeMB) << 20,
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func positiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, s)
	}
	return v, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
