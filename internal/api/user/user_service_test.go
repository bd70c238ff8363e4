package user

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

// MockUserRepo is a mock implementation of the Repository interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id types.UserID) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) Insert(ctx context.Context, user types.User) (types.UserID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(types.UserID), args.Error(1)
}

func (m *MockUserRepo) AddSavedPlace(ctx context.Context, id types.UserID, placeID types.PlaceID) error {
	args := m.Called(ctx, id, placeID)
	return args.Error(0)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, types.ErrNotFound)
}

func TestSignup(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()
	email := "mira@example.com"
	userID := types.UserID("64b0c1f2a3d4e5f60718293a")

	t.Run("ExistingEmailReturnsSameUser", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockUserRepo)
		service := NewServiceImpl(mockRepo, logger)

		existing := &types.User{ID: userID.ObjectID(), Name: "Mira", Email: email}
		mockRepo.On("GetByEmail", mock.Anything, email).Return(existing, nil).Twice()

		first, err := service.Signup(ctx, "Mira", email, nil)
		assert.NoError(t, err)
		second, err := service.Signup(ctx, "Someone Else", email, nil)
		assert.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NewEmailInsertsWithEmptySets", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockUserRepo)
		service := NewServiceImpl(mockRepo, logger)

		var inserted types.User
		mockRepo.On("GetByEmail", mock.Anything, email).Return(nil, notFoundErr("user")).Once()
		mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("types.User")).
			Run(func(args mock.Arguments) {
				inserted = args.Get(1).(types.User)
			}).
			Return(userID, nil).Once()
		mockRepo.On("GetByID", mock.Anything, userID).
			Return(&types.User{ID: userID.ObjectID(), Name: "Mira", Email: email, SavedPlaces: []types.PlaceID{}, SavedCities: []string{}}, nil).Once()

		u, err := service.Signup(ctx, "Mira", email, nil)

		assert.NoError(t, err)
		assert.Equal(t, email, u.Email)
		assert.NotNil(t, inserted.SavedPlaces)
		assert.Empty(t, inserted.SavedPlaces)
		assert.Empty(t, inserted.SavedCities)
		mockRepo.AssertExpectations(t)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockUserRepo)
		service := NewServiceImpl(mockRepo, logger)

		mockRepo.On("GetByEmail", mock.Anything, email).
			Return(nil, fmt.Errorf("find: %w", types.ErrStoreUnavailable)).Once()

		_, err := service.Signup(ctx, "Mira", email, nil)

		assert.ErrorIs(t, err, types.ErrStoreUnavailable)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestGetProfile(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()
	userID := types.UserID("64b0c1f2a3d4e5f60718293a")

	t.Run("NotFound", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockUserRepo)
		service := NewServiceImpl(mockRepo, logger)

		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, notFoundErr("user")).Once()

		_, err := service.GetProfile(ctx, userID)

		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestSavePlace(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()
	userID := types.UserID("64b0c1f2a3d4e5f60718293a")
	placeID := types.PlaceID("74b0c1f2a3d4e5f60718293b")

	t.Run("ReturnsUpdatedUser", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockUserRepo)
		service := NewServiceImpl(mockRepo, logger)

		mockRepo.On("AddSavedPlace", mock.Anything, userID, placeID).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, userID).
			Return(&types.User{ID: userID.ObjectID(), SavedPlaces: []types.PlaceID{placeID}}, nil).Once()

		u, err := service.SavePlace(ctx, userID, placeID)

		assert.NoError(t, err)
		assert.Equal(t, []types.PlaceID{placeID}, u.SavedPlaces)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownUserIsNoOp", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockUserRepo)
		service := NewServiceImpl(mockRepo, logger)

		mockRepo.On("AddSavedPlace", mock.Anything, userID, placeID).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, notFoundErr("user")).Once()

		u, err := service.SavePlace(ctx, userID, placeID)

		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}
