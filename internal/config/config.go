// Package config holds environment-backed defaults for the asptool CLI.
// Command-line flags override every value loaded here.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// DefaultLogDir is where per-run log files go when nothing else is set.
const DefaultLogDir = "asp_tools_log"

// Config holds the logging defaults the root command starts from.
type Config struct {
	LogDir    string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from ASPTOOL_LOG_DIR, ASPTOOL_LOG_LEVEL and
// ASPTOOL_LOG_FORMAT, falling back to defaults for unset variables.
func Load() *Config {
	return &Config{
		LogDir:    getEnv("ASPTOOL_LOG_DIR", DefaultLogDir),
		LogLevel:  ParseLogLevel(getEnv("ASPTOOL_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("ASPTOOL_LOG_FORMAT", "text")),
	}
}

// ParseLogLevel maps a level name to a slog level. Unknown names mean info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
