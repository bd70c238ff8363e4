package place

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/solosafe/solosafe-api/app/db"
	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Repository = (*MongoRepository)(nil)

// Repository defines persistence for the places directory.
type Repository interface {
	List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error)
	GetByID(ctx context.Context, id types.PlaceID) (*types.Place, error)
	Insert(ctx context.Context, place types.Place) (types.PlaceID, error)
	UpdateSafetyScore(ctx context.Context, id types.PlaceID, score float64) error
}

type MongoRepository struct {
	logger *slog.Logger
	col    *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		logger: logger,
		col:    db.Collection(database.CollectionPlace),
	}
}

// buildFilter translates the directory filters into a store query. City and
// type are anchored case-insensitive matches; the free-text query is an
// unanchored case-insensitive substring over name, description and tags.
func buildFilter(filter types.PlaceFilter) bson.M {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.City) + "$", Options: "i"}
	}
	if filter.Type != "" {
		query["type"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.Type) + "$", Options: "i"}
	}
	if filter.Query != "" {
		q := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": q},
			bson.M{"description": q},
			bson.M{"main_tags": bson.M{"$elemMatch": bson.M{"$regex": q}}},
		}
	}
	return query
}

func (r *MongoRepository) List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	start := time.Now()
	cur, err := r.col.Find(ctx, buildFilter(filter))
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to list places: %w", types.ErrStoreUnavailable)
	}
	defer cur.Close(ctx)

	var places []types.Place
	if err := cur.All(ctx, &places); err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to decode places: %w", types.ErrStoreUnavailable)
	}
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	return places, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id types.PlaceID) (*types.Place, error) {
	var place types.Place
	err := r.col.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("place %s: %w", id, types.ErrNotFound)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to get place: %w", types.ErrStoreUnavailable)
	}
	return &place, nil
}

func (r *MongoRepository) Insert(ctx context.Context, place types.Place) (types.PlaceID, error) {
	res, err := r.col.InsertOne(ctx, place)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return "", fmt.Errorf("failed to insert place: %w", types.ErrStoreUnavailable)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return types.PlaceID(oid.Hex()), nil
}

func (r *MongoRepository) UpdateSafetyScore(ctx context.Context, id types.PlaceID, score float64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id.ObjectID()},
		bson.M{"$set": bson.M{"safety_score": score}},
	)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return fmt.Errorf("failed to update safety score: %w", types.ErrStoreUnavailable)
	}
	return nil
}
