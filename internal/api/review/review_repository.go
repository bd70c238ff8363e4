package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/solosafe/solosafe-api/app/db"
	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Repository = (*MongoRepository)(nil)

// Repository defines persistence for reviews.
type Repository interface {
	Insert(ctx context.Context, review types.Review) (primitive.ObjectID, error)
	// ListByPlace returns the place's reviews newest first. An unknown place
	// yields an empty slice, not an error.
	ListByPlace(ctx context.Context, placeID types.PlaceID) ([]types.Review, error)
}

type MongoRepository struct {
	logger *slog.Logger
	col    *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		logger: logger,
		col:    db.Collection(database.CollectionReview),
	}
}

func (r *MongoRepository) Insert(ctx context.Context, review types.Review) (primitive.ObjectID, error) {
	start := time.Now()
	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return primitive.NilObjectID, fmt.Errorf("failed to insert review: %w", types.ErrStoreUnavailable)
	}
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid, nil
}

func (r *MongoRepository) ListByPlace(ctx context.Context, placeID types.PlaceID) ([]types.Review, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"place_id": placeID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to list reviews: %w", types.ErrStoreUnavailable)
	}
	defer cur.Close(ctx)

	var reviews []types.Review
	if err := cur.All(ctx, &reviews); err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to decode reviews: %w", types.ErrStoreUnavailable)
	}
	return reviews, nil
}
