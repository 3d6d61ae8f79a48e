package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Database type constants
const (
	MongoDbType    = "mongodb"
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
)

// DefaultCollection is the collection (or table) people are stored in
const DefaultCollection = "people"

// DatabaseSettings holds the connection settings for the selected store
type DatabaseSettings struct {
	Type       string `mapstructure:"type" validate:"required,oneof=mongodb sqlite postgres"`
	// An empty sqlite DSN opens an in-memory database
	DSN        string `mapstructure:"dsn" validate:"required_unless=Type sqlite"`
	DBName     string `mapstructure:"db_name" validate:"required_unless=Type sqlite"`
	Collection string `mapstructure:"collection" validate:"required_if=Type mongodb"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	return nil
}
