package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/solosafe/solosafe-api/internal/api/place"
	"github.com/solosafe/solosafe-api/internal/api/quiz"
	"github.com/solosafe/solosafe-api/internal/api/review"
	"github.com/solosafe/solosafe-api/internal/api/system"
	"github.com/solosafe/solosafe-api/internal/api/user"
)

// Config contains the handlers needed for the router setup.
type Config struct {
	PlaceHandler  *place.Handler
	ReviewHandler *review.Handler
	UserHandler   *user.Handler
	QuizHandler   *quiz.Handler
	SystemHandler *system.Handler
}

// SetupRouter wires all application routes. Server-wide middleware (logger,
// request ID, recoverer) is applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/", cfg.SystemHandler.Root)
	r.Get("/schema", cfg.SystemHandler.GetSchema)
	r.Get("/test", cfg.SystemHandler.TestDatabase)
	r.Post("/seed", cfg.PlaceHandler.SeedSamplePlaces)

	r.Get("/places", cfg.PlaceHandler.ListPlaces)
	r.Route("/places/{placeID}/reviews", func(r chi.Router) {
		r.Post("/", cfg.ReviewHandler.AddReview)
		r.Get("/", cfg.ReviewHandler.ListReviews)
	})

	r.Post("/quiz", cfg.QuizHandler.EvaluateQuiz)

	r.Post("/auth/signup", cfg.UserHandler.Signup)
	r.Route("/me/{userID}", func(r chi.Router) {
		r.Get("/", cfg.UserHandler.GetProfile)
		r.Post("/save", cfg.UserHandler.SavePlace)
	})

	return r
}
