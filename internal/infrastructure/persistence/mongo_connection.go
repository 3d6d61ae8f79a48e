package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/basstop798/mangoose/internal/pkg/config"
	"github.com/basstop798/mangoose/internal/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connection tuning; exported so tests can shorten them.
var (
	ServerSelectionTimeout = 5 * time.Second
	PingMaxElapsedTime     = 30 * time.Second
)

// MongoConnection holds the process-wide MongoDB client and the selected database
type MongoConnection struct {
	Client   *mongo.Client
	Database *mongo.Database
	logger   logger.Logger
}

// NewMongoConnection connects to MongoDB and waits until the server answers a ping.
// Pings are retried with exponential backoff for at most PingMaxElapsedTime.
func NewMongoConnection(ctx context.Context, settings config.DatabaseSettings, logger logger.Logger) (*MongoConnection, error) {
	if settings.Type != config.MongoDbType {
		return nil, fmt.Errorf("unsupported database type for MongoDB connection: %s", settings.Type)
	}

	clientOpts := options.Client().
		ApplyURI(settings.DSN).
		SetServerSelectionTimeout(ServerSelectionTimeout)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = PingMaxElapsedTime

	ping := func() error {
		return client.Ping(ctx, readpref.Primary())
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("MongoDB not reachable yet, retrying in ", wait, ": ", err)
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB database ", settings.DBName)

	return &MongoConnection{
		Client:   client,
		Database: client.Database(settings.DBName),
		logger:   logger,
	}, nil
}

// Collection returns a handle on the named collection of the connected database
func (c *MongoConnection) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

// DropDatabase removes the connected database (test cleanup utility)
func (c *MongoConnection) DropDatabase(ctx context.Context) error {
	if err := c.Database.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", c.Database.Name(), err)
	}
	return nil
}

// Close disconnects the client
func (c *MongoConnection) Close(ctx context.Context) error {
	if err := c.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	c.logger.Info("Disconnected from MongoDB")
	return nil
}
