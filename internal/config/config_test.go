package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, AppConfig{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, AppConfig{LogLevel: "info"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, AppConfig{LogLevel: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelError, AppConfig{LogLevel: "error"}.SlogLevel())
	// Unknown values fall back to info.
	assert.Equal(t, slog.LevelInfo, AppConfig{LogLevel: "verbose"}.SlogLevel())
}
