package review

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

// MockReviewRepo is a mock implementation of the Repository interface
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Insert(ctx context.Context, review types.Review) (primitive.ObjectID, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockReviewRepo) ListByPlace(ctx context.Context, placeID types.PlaceID) ([]types.Review, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Review), args.Error(1)
}

// MockPlaceRepo is a mock implementation of the place.Repository interface
type MockPlaceRepo struct {
	mock.Mock
}

func (m *MockPlaceRepo) List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func (m *MockPlaceRepo) GetByID(ctx context.Context, id types.PlaceID) (*types.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Place), args.Error(1)
}

func (m *MockPlaceRepo) Insert(ctx context.Context, place types.Place) (types.PlaceID, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(types.PlaceID), args.Error(1)
}

func (m *MockPlaceRepo) UpdateSafetyScore(ctx context.Context, id types.PlaceID, score float64) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

func reviewsWithRatings(placeID types.PlaceID, ratings ...int) []types.Review {
	reviews := make([]types.Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, types.Review{PlaceID: placeID, Rating: r})
	}
	return reviews
}

func TestAddReview(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()
	placeID := types.PlaceID("64b0c1f2a3d4e5f60718293a")

	t.Run("PlaceNotFound", func(t *testing.T) {
		ctx := context.Background()
		mockReviews := new(MockReviewRepo)
		mockPlaces := new(MockPlaceRepo)
		service := NewServiceImpl(mockReviews, mockPlaces, logger)

		mockPlaces.On("GetByID", mock.Anything, placeID).
			Return(nil, fmt.Errorf("place %s: %w", placeID, types.ErrNotFound)).Once()

		_, err := service.AddReview(ctx, placeID, NewReviewParams{UserID: "u1", Rating: 4})

		assert.ErrorIs(t, err, types.ErrNotFound)
		mockReviews.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		mockPlaces.AssertExpectations(t)
	})

	t.Run("InsertAndRecompute", func(t *testing.T) {
		ctx := context.Background()
		mockReviews := new(MockReviewRepo)
		mockPlaces := new(MockPlaceRepo)
		service := NewServiceImpl(mockReviews, mockPlaces, logger)

		id := primitive.NewObjectID()
		mockPlaces.On("GetByID", mock.Anything, placeID).
			Return(&types.Place{Name: "Aurora Boutique Hotel"}, nil).Once()
		mockReviews.On("Insert", mock.Anything, mock.AnythingOfType("types.Review")).Return(id, nil).Once()
		// ratings 5, 4, 4 -> mean 4.333... -> 4.33
		mockReviews.On("ListByPlace", mock.Anything, placeID).
			Return(reviewsWithRatings(placeID, 5, 4, 4), nil).Once()
		mockPlaces.On("UpdateSafetyScore", mock.Anything, placeID, 4.33).Return(nil).Once()

		got, err := service.AddReview(ctx, placeID, NewReviewParams{UserID: "u1", Rating: 4})

		assert.NoError(t, err)
		assert.Equal(t, id, got)
		mockReviews.AssertExpectations(t)
		mockPlaces.AssertExpectations(t)
	})

	t.Run("SetsCreatedAtAndPlace", func(t *testing.T) {
		ctx := context.Background()
		mockReviews := new(MockReviewRepo)
		mockPlaces := new(MockPlaceRepo)
		service := NewServiceImpl(mockReviews, mockPlaces, logger)

		var stored types.Review
		mockPlaces.On("GetByID", mock.Anything, placeID).Return(&types.Place{}, nil).Once()
		mockReviews.On("Insert", mock.Anything, mock.AnythingOfType("types.Review")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(types.Review)
			}).
			Return(primitive.NewObjectID(), nil).Once()
		mockReviews.On("ListByPlace", mock.Anything, placeID).
			Return(reviewsWithRatings(placeID, 5), nil).Once()
		mockPlaces.On("UpdateSafetyScore", mock.Anything, placeID, 5.0).Return(nil).Once()

		_, err := service.AddReview(ctx, placeID, NewReviewParams{
			UserID:     "u1",
			Rating:     5,
			SafetyTags: []string{"well-lit"},
			NightSafe:  true,
		})

		assert.NoError(t, err)
		assert.Equal(t, placeID, stored.PlaceID)
		assert.Equal(t, types.UserID("u1"), stored.UserID)
		assert.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("ScoreUpdateFailure", func(t *testing.T) {
		ctx := context.Background()
		mockReviews := new(MockReviewRepo)
		mockPlaces := new(MockPlaceRepo)
		service := NewServiceImpl(mockReviews, mockPlaces, logger)

		mockPlaces.On("GetByID", mock.Anything, placeID).Return(&types.Place{}, nil).Once()
		mockReviews.On("Insert", mock.Anything, mock.AnythingOfType("types.Review")).
			Return(primitive.NewObjectID(), nil).Once()
		mockReviews.On("ListByPlace", mock.Anything, placeID).
			Return(nil, fmt.Errorf("find: %w", types.ErrStoreUnavailable)).Once()

		_, err := service.AddReview(ctx, placeID, NewReviewParams{UserID: "u1", Rating: 3})

		assert.ErrorIs(t, err, types.ErrStoreUnavailable)
		mockPlaces.AssertNotCalled(t, "UpdateSafetyScore", mock.Anything, mock.Anything, mock.Anything)
	})
}

// Sequential inserts must converge on the rounded mean of all ratings.
func TestScoreConvergence(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()
	placeID := types.PlaceID("64b0c1f2a3d4e5f60718293a")
	ctx := context.Background()

	ratings := []int{3, 5, 2, 4, 4, 1, 5}

	mockReviews := new(MockReviewRepo)
	mockPlaces := new(MockPlaceRepo)
	service := NewServiceImpl(mockReviews, mockPlaces, logger)

	mockPlaces.On("GetByID", mock.Anything, placeID).Return(&types.Place{}, nil)
	mockReviews.On("Insert", mock.Anything, mock.AnythingOfType("types.Review")).
		Return(primitive.NewObjectID(), nil)

	var seen []int
	for _, r := range ratings {
		seen = append(seen, r)

		sum := 0
		for _, v := range seen {
			sum += v
		}
		want := roundScore(float64(sum) / float64(len(seen)))

		mockReviews.On("ListByPlace", mock.Anything, placeID).
			Return(reviewsWithRatings(placeID, seen...), nil).Once()
		mockPlaces.On("UpdateSafetyScore", mock.Anything, placeID, want).Return(nil).Once()

		_, err := service.AddReview(ctx, placeID, NewReviewParams{UserID: "u1", Rating: r})
		assert.NoError(t, err)
	}

	// final mean of 3,5,2,4,4,1,5 = 24/7 = 3.4285... -> 3.43
	mockPlaces.AssertExpectations(t)
	mockReviews.AssertExpectations(t)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 4.33, roundScore(13.0/3.0))
	assert.Equal(t, 3.5, roundScore(3.5))
	assert.Equal(t, 2.67, roundScore(8.0/3.0))
	assert.Equal(t, 5.0, roundScore(5.0))
}

func TestListReviews(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()
	ctx := context.Background()

	t.Run("UnknownPlaceYieldsEmpty", func(t *testing.T) {
		mockReviews := new(MockReviewRepo)
		mockPlaces := new(MockPlaceRepo)
		service := NewServiceImpl(mockReviews, mockPlaces, logger)

		mockReviews.On("ListByPlace", mock.Anything, types.PlaceID("does-not-exist")).
			Return([]types.Review{}, nil).Once()

		reviews, err := service.ListReviews(ctx, "does-not-exist")

		assert.NoError(t, err)
		assert.Empty(t, reviews)
		mockPlaces.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
