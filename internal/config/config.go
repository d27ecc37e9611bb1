package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	PassThreshold     float64
	SessionWordLimit  int
	ForgotDelayMins   int
	EasyMultiplier    float64
	HardMultiplier    float64
	MasteryThreshold  int
	ImportWorkerCount int
	ImportQueueSize   int
	StatsSnapshotHour int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:hihsk.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		PassThreshold:     envFloatOr("QUIZ_PASS_THRESHOLD", 0.7),
		SessionWordLimit:  envIntOr("SESSION_WORD_LIMIT", 50),
		ForgotDelayMins:   envIntOr("SRS_FORGOT_DELAY_MINS", 10),
		EasyMultiplier:    envFloatOr("SRS_EASY_MULTIPLIER", 1.3),
		HardMultiplier:    envFloatOr("SRS_HARD_MULTIPLIER", 0.8),
		MasteryThreshold:  envIntOr("SRS_MASTERY_THRESHOLD", 3),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
		StatsSnapshotHour: envIntOr("STATS_SNAPSHOT_HOUR", 3),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.PassThreshold <= 0 || c.PassThreshold > 1 {
		problems = append(problems, fmt.Sprintf("QUIZ_PASS_THRESHOLD must be in (0, 1], got %g", c.PassThreshold))
	}
	if c.SessionWordLimit < 1 {
		problems = append(problems, "SESSION_WORD_LIMIT must be at least 1")
	}
	if c.ForgotDelayMins < 1 {
		problems = append(problems, "SRS_FORGOT_DELAY_MINS must be at least 1")
	}
	if c.EasyMultiplier <= 0 {
		problems = append(problems, "SRS_EASY_MULTIPLIER must be positive")
	}
	if c.HardMultiplier <= 0 {
		problems = append(problems, "SRS_HARD_MULTIPLIER must be positive")
	}
	if c.MasteryThreshold < 1 {
		problems = append(problems, "SRS_MASTERY_THRESHOLD must be at least 1")
	}
	if c.ImportWorkerCount < 1 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be at least 1")
	}
	if c.ImportQueueSize < 1 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be at least 1")
	}
	if c.StatsSnapshotHour < 0 || c.StatsSnapshotHour > 23 {
		problems = append(problems, "STATS_SNAPSHOT_HOUR must be between 0 and 23")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
