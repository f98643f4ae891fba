// Package config loads mortydex settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Default values used when the environment does not override them.
const (
	DefaultAPIURL  = "https://rickandmortyapi.com/api"
	DefaultTimeout = 30 * time.Second
)

// ProgressMode controls when the episode progress bar is shown.
type ProgressMode string

const (
	ProgressAuto   ProgressMode = "auto"
	ProgressAlways ProgressMode = "always"
	ProgressNever  ProgressMode = "never"
)

// Config holds all configuration values.
type Config struct {
	// API
	APIURL  string
	Timeout time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Console
	Progress ProgressMode
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		APIURL:  strings.TrimRight(getEnv("MORTYDEX_API_URL", DefaultAPIURL), "/"),
		Timeout: parseDuration(getEnv("MORTYDEX_TIMEOUT", ""), DefaultTimeout),

		LogFile:  getEnv("MORTYDEX_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("MORTYDEX_LOG_LEVEL", "WARN")),

		Progress: parseProgressMode(getEnv("MORTYDEX_PROGRESS", "auto")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func parseProgressMode(s string) ProgressMode {
	switch ProgressMode(strings.ToLower(s)) {
	case ProgressAlways:
		return ProgressAlways
	case ProgressNever:
		return ProgressNever
	default:
		return ProgressAuto
	}
}
