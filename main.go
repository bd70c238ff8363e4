package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/solosafe/solosafe-api/app/db"
	appLogger "github.com/solosafe/solosafe-api/app/logger"
	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/app/tracer"
	"github.com/solosafe/solosafe-api/config"
	"github.com/solosafe/solosafe-api/internal/api/place"
	"github.com/solosafe/solosafe-api/internal/api/quiz"
	"github.com/solosafe/solosafe-api/internal/api/review"
	"github.com/solosafe/solosafe-api/internal/api/system"
	"github.com/solosafe/solosafe-api/internal/api/user"
	api "github.com/solosafe/solosafe-api/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	if err := tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port, logger); err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Document store ---
	client, db, err := database.Init(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize document store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect document store client", slog.Any("error", err))
		}
	}()

	if !database.WaitForDB(ctx, client, logger) {
		logger.Error("Document store not ready after waiting, exiting.")
		os.Exit(1)
	}

	if err := database.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Error("Failed to ensure document store indexes", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency injection ---
	placeRepo := place.NewMongoRepository(db, logger)
	placeService := place.NewServiceImpl(placeRepo, logger)
	placeHandler := place.NewHandler(placeService, logger)

	reviewRepo := review.NewMongoRepository(db, logger)
	reviewService := review.NewServiceImpl(reviewRepo, placeRepo, logger)
	reviewHandler := review.NewHandler(reviewService, logger)

	userRepo := user.NewMongoRepository(db, logger)
	userService := user.NewServiceImpl(userRepo, logger)
	userHandler := user.NewHandler(userService, logger)

	quizRepo := quiz.NewMongoRepository(db, logger)
	quizService := quiz.NewServiceImpl(quizRepo, logger)
	quizHandler := quiz.NewHandler(quizService, logger)

	systemHandler := system.NewHandler(db, logger)

	mainRouter := api.SetupRouter(&api.Config{
		PlaceHandler:  placeHandler,
		ReviewHandler: reviewHandler,
		UserHandler:   userHandler,
		QuizHandler:   quizHandler,
		SystemHandler: systemHandler,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
