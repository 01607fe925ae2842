package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smartquiz/smartquiz-backend/internal/config"
	"github.com/smartquiz/smartquiz-backend/internal/handler"
	"github.com/smartquiz/smartquiz-backend/internal/middleware"
	"github.com/smartquiz/smartquiz-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz   *handler.QuizHandler
	Goal   *handler.GoalHandler
	System *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	handlers *Handlers,
	metrics *middleware.Metrics,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-API-Token", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Record request metrics for every route.
	router.Use(metrics.Middleware())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// Rate limiter for generation (per-IP budget from config).
	generateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	// ─── Public API ────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.POST("/generate", generateLimiter.Middleware(), handlers.Quiz.Generate)
		api.GET("/questions", handlers.Quiz.GetAllQuestions)
		api.GET("/quizzes/:quiz_id", handlers.Quiz.GetQuiz)
		api.GET("/config", handlers.Quiz.GetConfig)
		api.GET("/metrics", handlers.System.Metrics)
	}

	// ─── Goal Management (Token Guarded) ───────────────────────────────
	goals := router.Group("/api/v1/goals")
	goals.Use(middleware.RequireAPIToken(cfg.APIToken))
	{
		goals.POST("", handlers.Goal.ManageGoal)
	}

	return router
}
