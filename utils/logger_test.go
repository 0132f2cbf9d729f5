package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"tablebot/config"
)

func withLoggerConfig(t *testing.T, env, logLevel string) {
	t.Helper()
	prev := config.AppConfig
	prevLogger := Logger
	t.Cleanup(func() {
		config.AppConfig = prev
		Logger = prevLogger
	})
	config.AppConfig.Env = env
	config.AppConfig.LogLevel = logLevel
	Logger = nil
}

func TestLoggerHonorsConfiguredLevel(t *testing.T) {
	withLoggerConfig(t, "production", "warn")

	InitializeLogger()
	require.NotNil(t, Logger)
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
}

func TestLoggerFallsBackOnBadLevel(t *testing.T) {
	withLoggerConfig(t, "production", "extremely-chatty")

	InitializeLogger()
	require.NotNil(t, Logger)
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestLoggerDevelopmentDefaultsToDebug(t *testing.T) {
	withLoggerConfig(t, "development", "")

	InitializeLogger()
	require.NotNil(t, Logger)
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}
