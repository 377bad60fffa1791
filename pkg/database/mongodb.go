package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	clientInstance *mongo.Client
	clientOnce     sync.Once
	clientErr      error
)

// MongoDB holds the shared database handle for the optional result archive.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Options configures the MongoDB connection.
type Options struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize uint64
}

// NewMongoDB connects to MongoDB. The client is a process-wide singleton:
// concurrent first calls share one connection attempt.
func NewMongoDB(opts Options) (*MongoDB, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("MongoDB URI is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	clientOnce.Do(func() {
		clientOptions := options.Client().
			ApplyURI(opts.URI).
			SetMaxPoolSize(opts.MaxPoolSize)

		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			clientErr = fmt.Errorf("connect to MongoDB: %w", err)
			return
		}

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			clientErr = fmt.Errorf("ping MongoDB: %w", err)
			return
		}

		clientInstance = client
	})

	if clientErr != nil {
		return nil, clientErr
	}

	return &MongoDB{
		Client:   clientInstance,
		Database: clientInstance.Database(opts.Database),
	}, nil
}

// Ping verifies the connection is alive.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}
