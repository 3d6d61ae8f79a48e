package persistence

import (
	"context"
	"fmt"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/pkg/config"
	"github.com/basstop798/mangoose/internal/pkg/logger"
)

// PersonStore bundles a PersonRepository with the connection backing it
type PersonStore struct {
	Repository people.PersonRepository
	close      func(ctx context.Context) error
}

// NewPersonStore opens the store selected by settings.Type and returns a
// ready-to-use repository. Relational schemas are migrated on open.
func NewPersonStore(ctx context.Context, settings config.DatabaseSettings, logger logger.Logger) (*PersonStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Type {
	case config.MongoDbType:
		conn, err := NewMongoConnection(ctx, settings, logger)
		if err != nil {
			return nil, err
		}

		repo, err := NewMongoPersonRepository(ctx, conn.Collection(settings.Collection), logger)
		if err != nil {
			_ = conn.Close(ctx)
			return nil, err
		}

		return &PersonStore{Repository: repo, close: conn.Close}, nil

	case config.SqliteDbType, config.PostgresDbType:
		db, err := NewDBConnection(settings)
		if err != nil {
			return nil, err
		}

		if err := MigratePeople(db); err != nil {
			_ = CloseDB(db)
			return nil, err
		}

		repo, err := NewGormPersonRepository(db, logger)
		if err != nil {
			_ = CloseDB(db)
			return nil, err
		}

		logger.Info("Connected to ", settings.Type, " database")
		return &PersonStore{
			Repository: repo,
			close: func(context.Context) error {
				return CloseDB(db)
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
}

// Close releases the underlying connection
func (s *PersonStore) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}
