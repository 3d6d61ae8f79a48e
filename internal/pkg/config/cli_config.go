package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables consulted while loading configuration
const (
	EnvConfigPath = "CONFIG_PATH"
	EnvDotEnvPath = "DOTENV_PATH"
	EnvMongoURI   = "MONGO_URI"
	EnvPrefix     = "MANGOOSE"
)

// DefaultDotEnvFile is read when present in the working directory
const DefaultDotEnvFile = ".env"

// CLIConfig is the complete configuration of the mangoose CLI
type CLIConfig struct {
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
}

// Validate checks every nested settings block
func (c *CLIConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return nil
}

// DefaultViper returns a new viper instance with all default values
// from CLIConfig set.
func DefaultViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("database.type", MongoDbType)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.db_name", "mangoose")
	v.SetDefault("database.collection", DefaultCollection)

	logDefaults := DefaultLoggerSettings()
	v.SetDefault("logger.log_level", logDefaults.LogLevel)
	v.SetDefault("logger.log_type", logDefaults.LogType)
	v.SetDefault("logger.no_color", logDefaults.NoColor)
	v.SetDefault("logger.file_path", logDefaults.FilePath)
	v.SetDefault("logger.max_size", logDefaults.MaxSize)
	v.SetDefault("logger.max_backups", logDefaults.MaxBackups)
	v.SetDefault("logger.max_age", logDefaults.MaxAge)

	return v
}

// InitializeCLIConfig loads the CLI configuration from defaults, the optional
// YAML file at configPath, the dotenv file and the environment.
func InitializeCLIConfig(configPath string) (*CLIConfig, error) {
	dotEnvPath := os.Getenv(EnvDotEnvPath)
	if dotEnvPath == "" {
		dotEnvPath = DefaultDotEnvFile
	}
	return LoadCLIConfig(configPath, dotEnvPath)
}

// LoadCLIConfig is InitializeCLIConfig with an explicit dotenv path.
// An empty path disables the respective source.
func LoadCLIConfig(configPath, dotEnvPath string) (*CLIConfig, error) {
	if dotEnvPath != "" {
		if err := LoadDotEnv(dotEnvPath); err != nil {
			return nil, err
		}
	}

	v := DefaultViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// MONGO_URI wins over the prefixed variable name only when the latter is unset
	if err := v.BindEnv("database.dsn", EnvPrefix+"_DATABASE_DSN", EnvMongoURI); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvMongoURI, err)
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv reads KEY=VALUE pairs from path and exports those that are not
// already present in the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat dotenv file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read dotenv file %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
	}

	return nil
}
