package quiz

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
	quizService Service
	logger      *slog.Logger
}

func NewHandler(quizService Service, logger *slog.Logger) *Handler {
	return &Handler{
		quizService: quizService,
		logger:      logger,
	}
}

// EvaluateQuiz scores a quiz submission and persists the result. The optional
// user_id query parameter is stored with the result, unvalidated.
func (h *Handler) EvaluateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("QuizHandler").Start(r.Context(), "EvaluateQuiz", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/quiz"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "EvaluateQuiz"))

	var answers types.QuizAnswers
	if err := api.DecodeJSONBody(w, r, &answers); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.Validate.Struct(answers); err != nil {
		l.ErrorContext(ctx, "Quiz payload failed validation", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "all quiz fields are required")
		return
	}

	var userID *types.UserID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id := types.UserID(raw)
		userID = &id
	}

	eval, err := h.quizService.EvaluateQuiz(ctx, answers, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to evaluate quiz", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Database not available")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"id":              eval.ID.Hex(),
		"persona":         eval.Persona,
		"recommendations": eval.Recommendations,
	})
}
