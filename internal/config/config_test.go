package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ASPTOOL_LOG_DIR", "")
	t.Setenv("ASPTOOL_LOG_LEVEL", "")
	t.Setenv("ASPTOOL_LOG_FORMAT", "")

	cfg := Load()

	assert.Equal(t, DefaultLogDir, cfg.LogDir)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ASPTOOL_LOG_DIR", "/var/log/asptool")
	t.Setenv("ASPTOOL_LOG_LEVEL", "DEBUG")
	t.Setenv("ASPTOOL_LOG_FORMAT", "JSON")

	cfg := Load()

	assert.Equal(t, "/var/log/asptool", cfg.LogDir)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}
