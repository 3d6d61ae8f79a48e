//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/basstop798/mangoose/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := newConsoleLogger(&buf, config.LogLevelInfo, true)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.NotContains(t, output, "\x1b[", "no ANSI escapes expected with colors disabled")
}

func TestConsoleLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := newConsoleLogger(&buf, config.LogLevelDebug, true)
	logger.Debug("person ", "Mary", " loaded")

	assert.Contains(t, buf.String(), "person Mary loaded")
}

func TestConsoleLogger_Panic(t *testing.T) {
	var buf bytes.Buffer

	logger := newConsoleLogger(&buf, config.LogLevelInfo, true)

	assert.PanicsWithValue(t, "boom", func() {
		logger.Panic("boom")
	})
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo, false)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}
