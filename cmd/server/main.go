package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/bank"
	"github.com/smartquiz/smartquiz-backend/internal/config"
	"github.com/smartquiz/smartquiz-backend/internal/database"
	"github.com/smartquiz/smartquiz-backend/internal/generator"
	"github.com/smartquiz/smartquiz-backend/internal/handler"
	"github.com/smartquiz/smartquiz-backend/internal/logger"
	"github.com/smartquiz/smartquiz-backend/internal/middleware"
	"github.com/smartquiz/smartquiz-backend/internal/repository"
	"github.com/smartquiz/smartquiz-backend/internal/router"
	"github.com/smartquiz/smartquiz-backend/internal/service"
	"github.com/smartquiz/smartquiz-backend/internal/textindex"
	"github.com/smartquiz/smartquiz-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("generator_mode", cfg.GeneratorMode).
		Msg("Starting SmartQuiz Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Load Question Bank ────────────────────────────────────────────
	loader := bank.NewLoader(cfg.LoaderWorkers, cfg.LoaderParallelThreshold, log)
	fileBank, err := loader.LoadFile(cfg.BankPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BankPath).Msg("Failed to load question bank")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	quizStore := repository.NewQuizStore(rdb, cfg.QuizTTL)

	// ─── Initialize Services ──────────────────────────────────────────
	indexCache := textindex.NewIndexCache(cfg.IndexCacheMaxEntries, cfg.IndexCacheTTL)
	rng := generator.NewLockedRand()

	quizService := service.NewQuizService(cfg, fileBank, nil, indexCache, quizStore, rng, log)
	goalService := service.NewGoalService(cfg, questionRepo, quizService, loader, fileBank, log)

	// Merge persisted goal-managed questions into the bank BEFORE
	// accepting traffic.
	if err := goalService.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to merge stored questions")
	}

	metrics := middleware.NewMetrics()
	infraService := service.NewInfraService(cfg, quizService, metrics, pool, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Quiz:   handler.NewQuizHandler(quizService, log),
		Goal:   handler.NewGoalHandler(goalService, log),
		System: handler.NewSystemHandler(infraService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, metrics, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
