package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/BloggingApp/blog-service/internal/repository/mongodb"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"go.uber.org/zap"
)

const (
	STORAGE_POSTGRES = "postgres"
	STORAGE_MONGODB  = "mongodb"
	STORAGE_MEMORY   = "memory"
)

// openedStore is a connected storage backend along with its schema and
// teardown hooks.
type openedStore struct {
	*repository.Store
	migrate func(ctx context.Context) error
	close   func()
}

func openStore(ctx context.Context, logger *zap.Logger, driver string) (*openedStore, error) {
	switch driver {
	case STORAGE_POSTGRES:
		db, err := postgres.DB(ctx, config.DBConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			DBName:   os.Getenv("POSTGRES_DATABASE"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		logger.Info("Successfully connected to PostgreSQL")

		return &openedStore{
			Store: postgres.New(db),
			migrate: func(ctx context.Context) error {
				return postgres.Migrate(ctx, db)
			},
			close: db.Close,
		}, nil

	case STORAGE_MONGODB:
		m, err := mongodb.NewMongoDB(ctx, config.MongoConfig{
			URI:          os.Getenv("MONGO_URI"),
			Database:     os.Getenv("MONGO_DATABASE"),
			Transactions: os.Getenv("MONGO_TRANSACTIONS") == "true",
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Successfully connected to MongoDB")

		return &openedStore{
			Store:   mongodb.New(m),
			migrate: m.Migrate,
			close: func() {
				if err := m.Close(context.Background()); err != nil {
					logger.Sugar().Errorf("failed to disconnect from mongodb: %s", err.Error())
				}
			},
		}, nil

	case STORAGE_MEMORY:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &openedStore{
			Store:   memory.New(),
			migrate: func(ctx context.Context) error { return nil },
			close:   func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver: %s", driver)
}
