package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "retrieval", cfg.GeneratorMode)
	assert.Equal(t, []string{"GATE", "GATE AE", "Amazon SDE", "CAT"}, cfg.SupportedGoals)
	assert.Equal(t, []string{"beginner", "intermediate", "advanced"}, cfg.SupportedDifficulties)
	assert.Equal(t, 10, cfg.MaxQuestions)
	assert.Equal(t, 5, cfg.DefaultNumQuestions)
	assert.Equal(t, 5000, cfg.MaxFeatures)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, time.Hour, cfg.IndexCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.QuizTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "7")
	t.Setenv("TFIDF_MAX_FEATURES", "250")
	t.Setenv("SUPPORTED_GOALS", "GATE , CAT")
	t.Setenv("QUIZ_TTL_SECONDS", "60")

	cfg := Load()

	assert.Equal(t, 7, cfg.RateLimitPerMinute)
	assert.Equal(t, 250, cfg.MaxFeatures)
	assert.Equal(t, []string{"GATE", "CAT"}, cfg.SupportedGoals)
	assert.Equal(t, time.Minute, cfg.QuizTTL)
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}
