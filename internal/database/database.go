// Package database owns the connection to the document store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/deppfellow/contacts-service/internal/config"
	loggerConfig "github.com/deppfellow/contacts-service/internal/logger"
)

// DefaultDatabaseName is used when neither the config nor the
// connection string names a database.
const DefaultDatabaseName = "contacts"

// Database wraps the Mongo client shared by every request.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to the store, pings it and returns the handle.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	name, err := databaseName(cfg.Database)
	if err != nil {
		return nil, err
	}

	clientOptions := options.Client().
		ApplyURI(cfg.Database.URL).
		SetAppName(config.ServiceName)

	if cfg.Database.ConnectTimeout > 0 {
		clientOptions.SetConnectTimeout(cfg.Database.ConnectTimeout)
	}

	if loggerService.GetApplication() != nil {
		clientOptions.SetMonitor(nrmongo.NewCommandMonitor(nil))
	}

	if cfg.Primary.Env == "local" {
		clientOptions.SetLoggerOptions(options.Logger().
			SetSink(loggerConfig.NewMongoLogSink(*logger)).
			SetComponentLevel(options.LogComponentCommand, loggerConfig.GetMongoLogLevel(logger.GetLevel())))
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout(cfg))
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", name).Msg("connected to the database")

	return &Database{
		Client: client,
		DB:     client.Database(name),
		log:    logger,
	}, nil
}

// Ping checks the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}

// databaseName picks the configured name, then the one in the URL path.
func databaseName(cfg config.DatabaseConfig) (string, error) {
	if cfg.Name != "" {
		return cfg.Name, nil
	}

	cs, err := connstring.ParseAndValidate(cfg.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database url: %w", err)
	}

	if cs.Database != "" {
		return cs.Database, nil
	}

	return DefaultDatabaseName, nil
}

const defaultPingTimeout = 10

func pingTimeout(cfg *config.Config) time.Duration {
	if cfg.Database.ConnectTimeout > 0 {
		return cfg.Database.ConnectTimeout
	}
	return defaultPingTimeout * time.Second
}
