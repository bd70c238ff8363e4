package user

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
	userService Service
	logger      *slog.Logger
}

func NewHandler(userService Service, logger *slog.Logger) *Handler {
	return &Handler{
		userService: userService,
		logger:      logger,
	}
}

// SignupRequest is the expected JSON body for signup.
type SignupRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Photo *string `json:"photo,omitempty"`
}

// SavePlaceRequest is the expected JSON body for saving a place.
type SavePlaceRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
}

// Signup returns the existing user for the email or creates a new one.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("UserHandler").Start(r.Context(), "Signup", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/auth/signup"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Signup"))

	var req SignupRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(req); err != nil {
		l.ErrorContext(ctx, "Signup payload failed validation", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "name and a valid email are required")
		return
	}

	u, err := h.userService.Signup(ctx, req.Name, req.Email, req.Photo)
	if err != nil {
		l.ErrorContext(ctx, "Signup failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

// SavePlace adds a place to the user's saved set (idempotent).
func (h *Handler) SavePlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("UserHandler").Start(r.Context(), "SavePlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/me/{userID}/save"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SavePlace"))

	userID, err := types.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		l.ErrorContext(ctx, "Invalid user ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var req SavePlaceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(req); err != nil {
		l.ErrorContext(ctx, "Save payload failed validation", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "place_id is required")
		return
	}

	u, err := h.userService.SavePlace(ctx, userID, types.PlaceID(req.PlaceID))
	if err != nil {
		l.ErrorContext(ctx, "Failed to save place", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}

	// u is nil when the user ID matched nothing; the update was a no-op and
	// the response body is null, matching the store's view.
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

// GetProfile returns the full user document.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("UserHandler").Start(r.Context(), "GetProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/me/{userID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetProfile"))

	userID, err := types.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		l.ErrorContext(ctx, "Invalid user ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ID format")
		return
	}

	u, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, u)
}
