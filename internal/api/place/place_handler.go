package place

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/solosafe/solosafe-api/internal/api"
	"github.com/solosafe/solosafe-api/internal/types"
)

type Handler struct {
	placeService Service
	logger       *slog.Logger
}

func NewHandler(placeService Service, logger *slog.Logger) *Handler {
	return &Handler{
		placeService: placeService,
		logger:       logger,
	}
}

// ListPlaces returns the place directory filtered by the optional
// city, type and q query parameters.
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "ListPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListPlaces"))

	filter := types.PlaceFilter{
		City:  r.URL.Query().Get("city"),
		Type:  r.URL.Query().Get("type"),
		Query: r.URL.Query().Get("q"),
	}

	places, err := h.placeService.ListPlaces(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list places", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}
	if places == nil {
		places = []types.Place{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// SeedSamplePlaces inserts demo places for local development and demos.
func (h *Handler) SeedSamplePlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "SeedSamplePlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/seed"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SeedSamplePlaces"))

	ids, err := h.placeService.SeedSamplePlaces(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to seed sample places", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}

	l.InfoContext(ctx, "Sample places seeded", slog.Int("count", len(ids)))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string][]types.PlaceID{"inserted": ids})
}
