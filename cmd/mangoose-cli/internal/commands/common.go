package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/basstop798/mangoose/internal/app"
	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/infrastructure/persistence"
	"github.com/basstop798/mangoose/internal/pkg/config"
	"github.com/basstop798/mangoose/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigFlag names the persistent flag holding the YAML config path
const ConfigFlag = "config"

// setupLogger initializes the process-wide logger. Nil settings fall back
// to an info level console logger.
func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if settings == nil {
		settings = config.DefaultLoggerSettings()
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// session is one connection to the configured store, opened per command run
type session struct {
	service people.PersonService
	store   *persistence.PersonStore
	logger  logger.Logger
}

// openSession loads the configuration and connects to the configured store
func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	configPath, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", ConfigFlag, err)
	}

	cfg, err := config.InitializeCLIConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, err
	}

	store, err := persistence.NewPersonStore(ctx, cfg.Database, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to open person store: %w", err)
	}

	service, err := app.NewPersonService(store.Repository, loggerInstance)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("failed to create person service: %w", err)
	}

	return &session{
		service: service,
		store:   store,
		logger:  loggerInstance,
	}, nil
}

func (s *session) close(ctx context.Context) {
	if err := s.store.Close(ctx); err != nil {
		s.logger.Warn("failed to close person store: ", err)
	}
}

// commandContext returns the context cobra was executed with
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printJSON writes v as indented JSON followed by a newline
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
