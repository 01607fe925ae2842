package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHealthy(t *testing.T) {
	quizService := newTestService(serviceBank(), nil)
	s := NewInfraService(testConfig(), quizService, middleware.NewMetrics(), nil, nil, zerolog.Nop())

	health := s.HealthCheck(context.Background())
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "Available (8 questions)", health.Details["question_bank"])
	assert.Equal(t, "GATE: 8", health.Details["questions_by_goal"])
	assert.Equal(t, "short_answer: 8", health.Details["questions_by_type"])
	assert.Equal(t, "OK", health.Details["configuration"])
}

func TestHealthCheckEmptyBank(t *testing.T) {
	quizService := newTestService(nil, nil)
	s := NewInfraService(testConfig(), quizService, middleware.NewMetrics(), nil, nil, zerolog.Nop())

	health := s.HealthCheck(context.Background())
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "Empty", health.Details["question_bank"])
}

func TestHealthCheckMissingConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SupportedGoals = nil
	cfg.GeneratorMode = ""

	quizService := newTestService(serviceBank(), nil)
	s := NewInfraService(cfg, quizService, middleware.NewMetrics(), nil, nil, zerolog.Nop())

	health := s.HealthCheck(context.Background())
	require.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "Missing keys: SUPPORTED_GOALS, GENERATOR_MODE", health.Details["configuration"])
}
