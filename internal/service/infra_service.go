package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/bank"
	"github.com/smartquiz/smartquiz-backend/internal/config"
	"github.com/smartquiz/smartquiz-backend/internal/middleware"
	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// InfraService reports service health and process-local metrics.
type InfraService struct {
	cfg         *config.Config
	quizService *QuizService
	metrics     *middleware.Metrics
	pool        *pgxpool.Pool
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewInfraService creates an InfraService. pool and rdb may be nil when
// the service runs without those backends.
func NewInfraService(
	cfg *config.Config,
	quizService *QuizService,
	metrics *middleware.Metrics,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	log zerolog.Logger,
) *InfraService {
	return &InfraService{
		cfg:         cfg,
		quizService: quizService,
		metrics:     metrics,
		pool:        pool,
		rdb:         rdb,
		log:         log.With().Str("component", "infra_service").Logger(),
	}
}

// HealthCheck inspects the question bank, configuration, and backing
// stores. Any failed check flips the overall status to unhealthy.
func (s *InfraService) HealthCheck(ctx context.Context) model.HealthResponse {
	details := make(map[string]string)
	healthy := true

	stats := bank.Summarize(s.quizService.Bank())
	if stats.Total > 0 {
		details["question_bank"] = fmt.Sprintf("Available (%d questions)", stats.Total)
		details["questions_by_goal"] = formatCounts(stats.ByGoal)
		details["questions_by_type"] = formatCounts(stats.ByType)
	} else {
		details["question_bank"] = "Empty"
		healthy = false
	}

	if missing := s.missingConfigKeys(); len(missing) > 0 {
		details["configuration"] = "Missing keys: " + strings.Join(missing, ", ")
		healthy = false
	} else {
		details["configuration"] = "OK"
	}

	if s.pool != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := s.pool.Ping(pingCtx); err != nil {
			details["database"] = "Unreachable: " + err.Error()
			healthy = false
		} else {
			details["database"] = "OK"
		}
		cancel()
	}

	if s.rdb != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := s.rdb.Ping(pingCtx).Err(); err != nil {
			details["redis"] = "Unreachable: " + err.Error()
			healthy = false
		} else {
			details["redis"] = "OK"
		}
		cancel()
	}

	status := "healthy"
	if !healthy {
		status = "unhealthy"
		s.log.Warn().Interface("details", details).Msg("Health check failed")
	}

	return model.HealthResponse{Status: status, Details: details}
}

// Metrics returns a snapshot of the in-process request metrics.
func (s *InfraService) Metrics() model.LocalMetrics {
	return s.metrics.Snapshot()
}

func (s *InfraService) missingConfigKeys() []string {
	var missing []string
	if len(s.cfg.SupportedGoals) == 0 {
		missing = append(missing, "SUPPORTED_GOALS")
	}
	if len(s.cfg.SupportedDifficulties) == 0 {
		missing = append(missing, "SUPPORTED_DIFFICULTIES")
	}
	if len(s.cfg.SupportedModes) == 0 {
		missing = append(missing, "SUPPORTED_MODES")
	}
	if s.cfg.GeneratorMode == "" {
		missing = append(missing, "GENERATOR_MODE")
	}
	return missing
}

// formatCounts renders a count map as "key: n" pairs in sorted key order.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
