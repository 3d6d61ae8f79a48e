// Package main is the entry point for the mangoose-cli application.
// It initializes the root command, registers the person sub-commands
// and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/basstop798/mangoose/cmd/mangoose-cli/internal/commands"
	"github.com/basstop798/mangoose/internal/pkg/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "mangoose-cli",
		Short: "Person document store CLI tool",
		Long: `mangoose-cli creates, reads, updates and deletes Person documents
in a MongoDB collection. Relational stores (sqlite, postgres) are supported too.

The connection string is read from MONGO_URI (or MANGOOSE_DATABASE_DSN).
A .env file in the working directory is loaded when present; DOTENV_PATH
points to another one. Further settings come from the YAML file given by
--config or CONFIG_PATH, overridden by MANGOOSE_* environment variables.`,
	}

	rootCmd.PersistentFlags().StringP(commands.ConfigFlag, "", os.Getenv(config.EnvConfigPath), "Path to a YAML config file")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitPersonCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize person commands: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
