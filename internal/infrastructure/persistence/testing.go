//go:build integration
// +build integration

package persistence

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/basstop798/mangoose/internal/domain/people"
	"github.com/basstop798/mangoose/internal/pkg/config"
	"github.com/basstop798/mangoose/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

// Test constants
const (
	TestPostgresDSN      = "user=postgres password=postgres host=localhost port=5432 sslmode=disable"
	TestPostgresAdminDSN = "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"

	TestMongoImage = "mongo"
	TestMongoTag   = "7.0"

	dockerExpireSeconds = 120
)

// TestContext holds a relational test database and its repository
type TestContext struct {
	DB         *gorm.DB
	PersonRepo people.PersonRepository
}

// MongoTestContext holds a MongoDB test database and its repository
type MongoTestContext struct {
	Conn       *MongoConnection
	Collection *mongo.Collection
	PersonRepo people.PersonRepository
}

func uniqueDBName() string {
	return "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// SetupTestDB initializes a relational test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  sqliteMemoryDSN,
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		dbName := uniqueDBName()
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    TestPostgresDSN,
			DBName: dbName,
		}
		cleanupFunc = func() {
			_ = DropDatabase(TestPostgresAdminDSN, dbName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, MigratePeople(db), "Failed to migrate schema")

	repo, err := NewGormPersonRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create person repository")

	return &TestContext{
		DB:         db,
		PersonRepo: repo,
	}
}

var (
	mongoOnce sync.Once
	mongoURI  string
	mongoErr  error
)

// testMongoURI returns MONGO_URI when set, otherwise it starts a single
// MongoDB container shared by all tests of the package.
func testMongoURI() (string, error) {
	mongoOnce.Do(func() {
		if uri := os.Getenv(config.EnvMongoURI); uri != "" {
			mongoURI = uri
			return
		}
		mongoURI, mongoErr = startMongoContainer()
	})
	return mongoURI, mongoErr
}

func startMongoContainer() (string, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", err
	}
	if err := pool.Client.Ping(); err != nil {
		return "", err
	}

	resource, err := pool.RunWithOptions(
		&dockertest.RunOptions{Repository: TestMongoImage, Tag: TestMongoTag},
		func(hc *docker.HostConfig) {
			hc.AutoRemove = true
			hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
		})
	if err != nil {
		return "", err
	}
	// docker hard-kills the container after this many seconds
	_ = resource.Expire(dockerExpireSeconds)

	uri := "mongodb://" + resource.GetHostPort("27017/tcp")

	pool.MaxWait = dockerExpireSeconds * time.Second
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		conn, err := NewMongoConnection(ctx, config.DatabaseSettings{
			Type:   config.MongoDbType,
			DSN:    uri,
			DBName: "admin",
		}, noopLogger{})
		if err != nil {
			return err
		}
		return conn.Close(ctx)
	})
	if err != nil {
		_ = pool.Purge(resource)
		return "", err
	}

	return uri, nil
}

// SetupTestMongo connects to a fresh MongoDB database that is dropped on cleanup.
// The test is skipped when neither MONGO_URI nor docker is available.
func SetupTestMongo(t *testing.T) *MongoTestContext {
	t.Helper()

	uri, err := testMongoURI()
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	ctx := context.Background()
	log := testutil.SetupTestLogger(t)

	conn, err := NewMongoConnection(ctx, config.DatabaseSettings{
		Type:       config.MongoDbType,
		DSN:        uri,
		DBName:     uniqueDBName(),
		Collection: config.DefaultCollection,
	}, log)
	require.NoError(t, err, "Failed to connect to MongoDB")

	t.Cleanup(func() {
		_ = conn.DropDatabase(ctx)
		_ = conn.Close(ctx)
	})

	collection := conn.Collection(config.DefaultCollection)
	repo, err := NewMongoPersonRepository(ctx, collection, log)
	require.NoError(t, err, "Failed to create person repository")

	return &MongoTestContext{
		Conn:       conn,
		Collection: collection,
		PersonRepo: repo,
	}
}

// noopLogger silences connection attempts while the container starts
type noopLogger struct{}

func (noopLogger) Debug(args ...interface{}) {}
func (noopLogger) Info(args ...interface{})  {}
func (noopLogger) Warn(args ...interface{})  {}
func (noopLogger) Error(args ...interface{}) {}
func (noopLogger) Fatal(args ...interface{}) {}
func (noopLogger) Panic(args ...interface{}) {}
