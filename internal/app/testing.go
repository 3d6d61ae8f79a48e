//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/infrastructure/persistence"
	"github.com/basstop798/mangoose/internal/pkg/config"
	"github.com/basstop798/mangoose/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds the application services and the repository behind them
type TestServices struct {
	PersonService people.PersonService
	Walkthrough   *Walkthrough
	PersonRepo    people.PersonRepository
}

// SetupTestServices wires the application services to a fresh test store.
// dbType is one of the config database types.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	log := testutil.SetupTestLogger(t)

	var repo people.PersonRepository
	switch dbType {
	case config.MongoDbType:
		repo = persistence.SetupTestMongo(t).PersonRepo
	default:
		repo = persistence.SetupTestDB(t, dbType).PersonRepo
	}

	service, err := NewPersonService(repo, log)
	require.NoError(t, err, "Failed to create PersonService")

	walkthrough, err := NewWalkthrough(service, log)
	require.NoError(t, err, "Failed to create Walkthrough")

	return &TestServices{
		PersonService: service,
		Walkthrough:   walkthrough,
		PersonRepo:    repo,
	}
}
