package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/solosafe/solosafe-api/config"
)

const defaultRetries = 5

// Collection names used across repositories.
const (
	CollectionPlace      = "place"
	CollectionUser       = "user"
	CollectionReview     = "review"
	CollectionQuizResult = "quizresult"
)

// Init connects a Mongo client and returns the database handle named in the
// config. The caller owns the client and must Disconnect it on shutdown.
func Init(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	if cfg == nil || cfg.Repositories.Mongo.URI == "" {
		return nil, nil, fmt.Errorf("mongo configuration is missing or invalid")
	}

	connectTimeout := cfg.Repositories.Mongo.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Repositories.Mongo.URI))
	if err != nil {
		logger.Error("Failed to connect to document store", slog.Any("error", err))
		return nil, nil, fmt.Errorf("failed connecting to mongo: %w", err)
	}

	db := client.Database(cfg.Repositories.Mongo.DB)
	logger.Info("Document store client initialized",
		slog.String("database", cfg.Repositories.Mongo.DB))
	return client, db, nil
}

// WaitForDB pings the store until it responds or the retry budget runs out.
func WaitForDB(ctx context.Context, client *mongo.Client, logger *slog.Logger) bool {
	maxAttempts := defaultRetries
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err := client.Ping(ctx, nil)
		if err == nil {
			logger.InfoContext(ctx, "Document store connection successful")
			return true
		}

		waitDuration := time.Duration(attempts) * 200 * time.Millisecond
		logger.WarnContext(ctx, "Document store ping failed, retrying...",
			slog.Int("attempt", attempts),
			slog.Int("max_attempts", maxAttempts),
			slog.Duration("wait_duration", waitDuration),
			slog.String("error", err.Error()),
		)
		if attempts < maxAttempts {
			time.Sleep(waitDuration)
		}
	}
	logger.ErrorContext(ctx, "Document store connection failed after multiple retries")
	return false
}

// EnsureIndexes creates the indexes the query paths rely on: the signup
// email lookup and the per-place review listing sorted by creation time.
// The email index is non-unique; concurrent signups with the same email
// remain a known, accepted race.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	_, err := db.Collection(CollectionUser).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		logger.Error("Failed to create user email index", slog.Any("error", err))
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	_, err = db.Collection(CollectionReview).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "place_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		logger.Error("Failed to create review index", slog.Any("error", err))
		return fmt.Errorf("failed to create review index: %w", err)
	}

	logger.Info("Document store indexes ensured")
	return nil
}
