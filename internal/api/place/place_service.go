package place

import (
	"context"
	"log/slog"

	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for the places directory.
type Service interface {
	ListPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error)
	SeedSamplePlaces(ctx context.Context) ([]types.PlaceID, error)
}

type ServiceImpl struct {
	logger          *slog.Logger
	placeRepository Repository
}

func NewServiceImpl(placeRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		placeRepository: placeRepository,
	}
}

func (s *ServiceImpl) ListPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	places, err := s.placeRepository.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list places", slog.Any("error", err))
		return nil, err
	}
	return places, nil
}

// SeedSamplePlaces inserts the demo directory entries and returns their IDs.
func (s *ServiceImpl) SeedSamplePlaces(ctx context.Context) ([]types.PlaceID, error) {
	ids := make([]types.PlaceID, 0, len(samplePlaces))
	for _, p := range samplePlaces {
		id, err := s.placeRepository.Insert(ctx, p)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to seed place", slog.String("name", p.Name), slog.Any("error", err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var samplePlaces = []types.Place{
	{
		Name:        "Aurora Boutique Hotel",
		City:        "Lisbon",
		Type:        "hotel",
		SafetyScore: 4.7,
		Description: "Women-staffed, well-lit area; guests report safe returns at night.",
		MainTags:    []string{"women-staffed", "well-lit", "central"},
	},
	{
		Name:        "Garden District",
		City:        "Singapore",
		Type:        "neighborhood",
		SafetyScore: 4.9,
		Description: "Exceptionally safe at night; strong street presence and cameras.",
		MainTags:    []string{"night-safe", "family-friendly", "clean"},
	},
	{
		Name:        "Olive & Thyme",
		City:        "Barcelona",
		Type:        "restaurant",
		SafetyScore: 4.4,
		Description: "Busy staff presence, friendly crowd; avoid very late weekends.",
		MainTags:    []string{"staff-present", "friendly", "busy"},
	},
}
