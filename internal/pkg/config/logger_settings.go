package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels accepted in logger.log_level. Critical is logged at error level.
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Log sinks: coloured console output on stderr or a rotated JSON file
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation defaults applied when the file sink is selected without limits
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// DefaultLoggerSettings returns the info level console logger every command
// starts with before the configuration is loaded.
func DefaultLoggerSettings() *LoggerSettings {
	return &LoggerSettings{
		LogLevel:   LogLevelInfo,
		LogType:    LogTypeConsole,
		MaxSize:    DefaultLogMaxSizeMB,
		MaxBackups: DefaultLogMaxBackups,
		MaxAge:     DefaultLogMaxAgeDays,
	}
}

// LoggerSettings holds configuration settings for logging, including log level, type and file path
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=info debug error warning critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	NoColor    bool   `mapstructure:"no_color"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	// Rotation settings only matter for the file logger
	if s.LogType == LogTypeFile {
		if s.FilePath == "" {
			return fmt.Errorf("file path is required for file logger")
		}
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return fmt.Errorf("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 10 {
			return fmt.Errorf("max backups must be between 1 and 10")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return fmt.Errorf("max age must be between 1 and 365 days")
		}
	}

	return nil
}
