package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/solosafe/solosafe-api/app/db"
	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Repository = (*MongoRepository)(nil)

// Repository defines persistence for quiz results.
type Repository interface {
	Insert(ctx context.Context, result types.QuizResult) (primitive.ObjectID, error)
}

type MongoRepository struct {
	logger *slog.Logger
	col    *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		logger: logger,
		col:    db.Collection(database.CollectionQuizResult),
	}
}

func (r *MongoRepository) Insert(ctx context.Context, result types.QuizResult) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, result)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return primitive.NilObjectID, fmt.Errorf("failed to insert quiz result: %w", types.ErrStoreUnavailable)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid, nil
}
