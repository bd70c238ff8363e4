package review

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/api/place"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// NewReviewParams carries the validated fields of a review submission.
type NewReviewParams struct {
	UserID     types.UserID
	Rating     int
	SafetyTags []string
	Comment    *string
	NightSafe  bool
	Harassment bool
}

// Service defines the business logic contract for reviews.
type Service interface {
	// AddReview inserts a review for an existing place and recomputes the
	// place's safety score from all of its ratings.
	AddReview(ctx context.Context, placeID types.PlaceID, params NewReviewParams) (primitive.ObjectID, error)
	ListReviews(ctx context.Context, placeID types.PlaceID) ([]types.Review, error)
}

type ServiceImpl struct {
	logger           *slog.Logger
	reviewRepository Repository
	placeRepository  place.Repository
}

func NewServiceImpl(reviewRepository Repository, placeRepository place.Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:           logger,
		reviewRepository: reviewRepository,
		placeRepository:  placeRepository,
	}
}

func (s *ServiceImpl) AddReview(ctx context.Context, placeID types.PlaceID, params NewReviewParams) (primitive.ObjectID, error) {
	ctx, span := otel.Tracer("ReviewService").Start(ctx, "AddReview")
	defer span.End()

	// The place must exist before anything is written.
	if _, err := s.placeRepository.GetByID(ctx, placeID); err != nil {
		s.logger.ErrorContext(ctx, "place lookup failed before review insert", slog.Any("error", err))
		span.RecordError(err)
		return primitive.NilObjectID, err
	}

	review := types.Review{
		UserID:     params.UserID,
		PlaceID:    placeID,
		Rating:     params.Rating,
		SafetyTags: params.SafetyTags,
		Comment:    params.Comment,
		NightSafe:  params.NightSafe,
		Harassment: params.Harassment,
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.reviewRepository.Insert(ctx, review)
	if err != nil {
		span.RecordError(err)
		return primitive.NilObjectID, err
	}
	metrics.Get().ReviewsCreatedTotal.Add(ctx, 1)

	// Full recompute over every rating for the place. The insert above and
	// the score update below are separate writes: a failure in between
	// leaves the score stale until the next review arrives.
	if err := s.recomputeSafetyScore(ctx, placeID); err != nil {
		s.logger.ErrorContext(ctx, "safety score recompute failed after review insert",
			slog.String("placeID", placeID.String()), slog.Any("error", err))
		span.RecordError(err)
		return primitive.NilObjectID, fmt.Errorf("review stored but score update failed: %w", err)
	}

	span.SetStatus(codes.Ok, "Review created")
	return id, nil
}

func (s *ServiceImpl) recomputeSafetyScore(ctx context.Context, placeID types.PlaceID) error {
	reviews, err := s.reviewRepository.ListByPlace(ctx, placeID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	sum := 0
	for _, rev := range reviews {
		sum += rev.Rating
	}
	score := roundScore(float64(sum) / float64(len(reviews)))
	return s.placeRepository.UpdateSafetyScore(ctx, placeID, score)
}

// roundScore rounds a mean rating to two decimals.
func roundScore(mean float64) float64 {
	return math.Round(mean*100) / 100
}

func (s *ServiceImpl) ListReviews(ctx context.Context, placeID types.PlaceID) ([]types.Review, error) {
	reviews, err := s.reviewRepository.ListByPlace(ctx, placeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list reviews", slog.Any("error", err))
		return nil, err
	}
	return reviews, nil
}
