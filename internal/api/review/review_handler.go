package review

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/solosafe/solosafe-api/internal/api"
	"github.com/solosafe/solosafe-api/internal/types"
)

type Handler struct {
	reviewService Service
	logger        *slog.Logger
}

func NewHandler(reviewService Service, logger *slog.Logger) *Handler {
	return &Handler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// NewReviewRequest is the expected JSON body for creating a review.
type NewReviewRequest struct {
	UserID     string   `json:"user_id" validate:"required"`
	Rating     int      `json:"rating" validate:"required,min=1,max=5"`
	SafetyTags []string `json:"safety_tags"`
	Comment    *string  `json:"comment,omitempty"`
	NightSafe  bool     `json:"night_safe"`
	Harassment bool     `json:"harassment"`
}

// AddReview creates a review for a place and updates the place's safety score.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "AddReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/{placeID}/reviews"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AddReview"))

	placeID, err := types.ParsePlaceID(chi.URLParam(r, "placeID"))
	if err != nil {
		l.ErrorContext(ctx, "Invalid place ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ID format")
		return
	}
	l = l.With(slog.String("placeID", placeID.String()))

	var req NewReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(req); err != nil {
		l.ErrorContext(ctx, "Review payload failed validation", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "rating must be between 1 and 5 and user_id is required")
		return
	}

	params := NewReviewParams{
		UserID:     types.UserID(req.UserID),
		Rating:     req.Rating,
		SafetyTags: req.SafetyTags,
		Comment:    req.Comment,
		NightSafe:  req.NightSafe,
		Harassment: req.Harassment,
	}

	id, err := h.reviewService.AddReview(ctx, placeID, params)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.ErrorContext(ctx, "Place not found", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusNotFound, "Place not found")
			return
		}
		l.ErrorContext(ctx, "Failed to add review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}

	l.InfoContext(ctx, "Review created", slog.String("reviewID", id.Hex()))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"id": id.Hex()})
}

// ListReviews returns a place's reviews, newest first. An unknown place
// yields an empty list.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ReviewHandler").Start(r.Context(), "ListReviews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/{placeID}/reviews"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListReviews"))

	// No existence or format check here: reviews reference places by raw
	// string ID, so an unknown or malformed place simply matches nothing.
	placeID := types.PlaceID(chi.URLParam(r, "placeID"))

	reviews, err := h.reviewService.ListReviews(ctx, placeID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list reviews", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}
	if reviews == nil {
		reviews = []types.Review{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, reviews)
}
