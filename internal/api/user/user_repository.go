package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/solosafe/solosafe-api/app/db"
	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Repository = (*MongoRepository)(nil)

// Repository defines persistence for user profiles.
type Repository interface {
	// GetByEmail returns types.ErrNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	// GetByID returns types.ErrNotFound when the user doesn't exist.
	GetByID(ctx context.Context, id types.UserID) (*types.User, error)
	Insert(ctx context.Context, user types.User) (types.UserID, error)
	// AddSavedPlace adds the place to the user's saved set. Adding a place
	// already present, or targeting a missing user, is a no-op.
	AddSavedPlace(ctx context.Context, id types.UserID, placeID types.PlaceID) error
}

type MongoRepository struct {
	logger *slog.Logger
	col    *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		logger: logger,
		col:    db.Collection(database.CollectionUser),
	}
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	var u types.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with email %s: %w", email, types.ErrNotFound)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to get user by email: %w", types.ErrStoreUnavailable)
	}
	return &u, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id types.UserID) (*types.User, error) {
	var u types.User
	err := r.col.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to get user: %w", types.ErrStoreUnavailable)
	}
	return &u, nil
}

func (r *MongoRepository) Insert(ctx context.Context, user types.User) (types.UserID, error) {
	start := time.Now()
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return "", fmt.Errorf("failed to insert user: %w", types.ErrStoreUnavailable)
	}
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return types.UserID(oid.Hex()), nil
}

// savedPlaceUpdate builds the update that records a saved place. $addToSet
// keeps saved_places a set, so re-saving the same place changes nothing.
func savedPlaceUpdate(placeID types.PlaceID) bson.M {
	return bson.M{"$addToSet": bson.M{"saved_places": placeID}}
}

func (r *MongoRepository) AddSavedPlace(ctx context.Context, id types.UserID, placeID types.PlaceID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id.ObjectID()}, savedPlaceUpdate(placeID))
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return fmt.Errorf("failed to save place for user: %w", types.ErrStoreUnavailable)
	}
	return nil
}
