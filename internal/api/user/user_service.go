package user

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for user profiles.
type Service interface {
	// Signup returns the existing user for the email, or creates one.
	// Calling it twice with the same email yields the same user.
	Signup(ctx context.Context, name, email string, photo *string) (*types.User, error)
	GetProfile(ctx context.Context, id types.UserID) (*types.User, error)
	// SavePlace adds the place to the user's saved set and returns the user
	// as found afterwards; nil when the user ID matches no document.
	SavePlace(ctx context.Context, id types.UserID, placeID types.PlaceID) (*types.User, error)
}

type ServiceImpl struct {
	logger         *slog.Logger
	userRepository Repository
}

func NewServiceImpl(userRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		userRepository: userRepository,
	}
}

func (s *ServiceImpl) Signup(ctx context.Context, name, email string, photo *string) (*types.User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "Signup")
	defer span.End()

	metrics.Get().SignupRequestsTotal.Add(ctx, 1)

	// Find-or-create is two store calls, not atomic: two concurrent signups
	// with the same new email can both insert. Accepted limitation.
	existing, err := s.userRepository.GetByEmail(ctx, email)
	if err == nil {
		span.SetStatus(codes.Ok, "Existing user returned")
		return existing, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	newUser := types.User{
		Name:        name,
		Email:       email,
		Photo:       photo,
		SavedPlaces: []types.PlaceID{},
		SavedCities: []string{},
	}
	id, err := s.userRepository.Insert(ctx, newUser)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	created, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read back created user", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", slog.String("userID", id.String()))
	span.SetStatus(codes.Ok, "User created")
	return created, nil
}

func (s *ServiceImpl) GetProfile(ctx context.Context, id types.UserID) (*types.User, error) {
	u, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get user profile", slog.Any("error", err))
		return nil, err
	}
	return u, nil
}

func (s *ServiceImpl) SavePlace(ctx context.Context, id types.UserID, placeID types.PlaceID) (*types.User, error) {
	if err := s.userRepository.AddSavedPlace(ctx, id, placeID); err != nil {
		s.logger.ErrorContext(ctx, "failed to save place", slog.Any("error", err))
		return nil, err
	}

	u, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// The update matched nothing; mirror the store and return no user.
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
