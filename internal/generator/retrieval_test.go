package generator

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/smartquiz/smartquiz-backend/internal/textindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankQuestion(goal, difficulty, topic string, n int) model.QuizQuestion {
	return model.QuizQuestion{
		Goal:       goal,
		Type:       model.QuestionTypeShortAnswer,
		Question:   fmt.Sprintf("Sample question number %d about %s concepts.", n, topic),
		Answer:     fmt.Sprintf("answer %d", n),
		Difficulty: difficulty,
		Topic:      topic,
	}
}

func testBank() []model.QuizQuestion {
	var bank []model.QuizQuestion
	for i := 0; i < 8; i++ {
		bank = append(bank, bankQuestion("GATE", "beginner", "algorithms", i))
	}
	for i := 0; i < 3; i++ {
		bank = append(bank, bankQuestion("GATE", "advanced", "algorithms", 100+i))
	}
	for i := 0; i < 12; i++ {
		bank = append(bank, bankQuestion("CAT", "beginner", "arithmetic", 200+i))
	}
	return bank
}

func newRetrieval(bank []model.QuizQuestion) *RetrievalGenerator {
	cache := textindex.NewIndexCache(10, time.Hour)
	rng := rand.New(rand.NewSource(1))
	return NewRetrievalGenerator(bank, cache, rng, 5, 10, zerolog.Nop())
}

func TestRetrievalGenerate(t *testing.T) {
	g := newRetrieval(testBank())

	questions, err := g.Generate("GATE", "beginner", "", 6)
	require.NoError(t, err)
	require.Len(t, questions, 6)

	seen := make(map[string]struct{})
	for _, q := range questions {
		assert.Equal(t, "GATE", q.Goal)
		assert.Equal(t, "beginner", q.Difficulty)
		_, dup := seen[q.Question]
		assert.False(t, dup, "duplicate question %q", q.Question)
		seen[q.Question] = struct{}{}
	}
}

func TestRetrievalNoQuestions(t *testing.T) {
	g := newRetrieval(testBank())

	_, err := g.Generate("GATE", "intermediate", "", 5)
	var noQ *NoQuestionsError
	require.ErrorAs(t, err, &noQ)
	assert.Equal(t, "GATE", noQ.Goal)
	assert.Equal(t, "intermediate", noQ.Difficulty)
}

func TestRetrievalInsufficientData(t *testing.T) {
	g := newRetrieval(testBank())

	// 3 advanced questions exist; the request is raised to the default 5.
	_, err := g.Generate("GATE", "advanced", "", 1)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 5, insufficient.Required)
}

func TestRetrievalClampsLowRequests(t *testing.T) {
	g := newRetrieval(testBank())

	questions, err := g.Generate("GATE", "beginner", "", 1)
	require.NoError(t, err)
	assert.Len(t, questions, 5)
}

func TestRetrievalClampsHighRequests(t *testing.T) {
	g := newRetrieval(testBank())

	questions, err := g.Generate("CAT", "beginner", "", 50)
	require.NoError(t, err)
	assert.Len(t, questions, 10)
}

func TestRetrievalTopicFilter(t *testing.T) {
	bank := testBank()
	for i := 0; i < 6; i++ {
		bank = append(bank, bankQuestion("GATE", "beginner", "graph theory", 300+i))
	}
	g := newRetrieval(bank)

	questions, err := g.Generate("GATE", "beginner", "graph theory", 5)
	require.NoError(t, err)
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Equal(t, "graph theory", q.Topic)
	}
}

func TestRetrievalTopicShortfallFallsBack(t *testing.T) {
	// Only 2 questions carry the topic, so ranking cannot satisfy the
	// request and the generator falls back to sampling the full
	// candidate set.
	bank := testBank()
	bank = append(bank,
		bankQuestion("GATE", "beginner", "compilers", 400),
		bankQuestion("GATE", "beginner", "compilers", 401),
	)
	g := newRetrieval(bank)

	questions, err := g.Generate("GATE", "beginner", "compilers", 5)
	require.NoError(t, err)
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Equal(t, "GATE", q.Goal)
		assert.Equal(t, "beginner", q.Difficulty)
	}
}

func TestRetrievalStaleCacheFallsBack(t *testing.T) {
	bank := testBank()
	cache := textindex.NewIndexCache(10, time.Hour)

	// Seed the cache with an index built over a different candidate set.
	key := textindex.CacheKey("GATE", "beginner")
	cache.Put(key, textindex.BuildIndex([]string{"one doc only"}, 0))

	g := NewRetrievalGenerator(bank, cache, rand.New(rand.NewSource(1)), 5, 10, zerolog.Nop())
	questions, err := g.Generate("GATE", "beginner", "", 5)
	require.NoError(t, err)
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Equal(t, "GATE", q.Goal)
	}
}

func TestRetrievalScrubsShortAnswerOptions(t *testing.T) {
	bank := testBank()
	// Simulate a dirty record that slipped through with options set.
	for i := range bank {
		bank[i].Options = []string{"stale"}
	}
	g := newRetrieval(bank)

	questions, err := g.Generate("GATE", "beginner", "", 5)
	require.NoError(t, err)
	for _, q := range questions {
		assert.Nil(t, q.Options)
	}
}

func TestRetrievalReusesCachedIndex(t *testing.T) {
	bank := testBank()
	cache := textindex.NewIndexCache(10, time.Hour)
	g := NewRetrievalGenerator(bank, cache, rand.New(rand.NewSource(1)), 5, 10, zerolog.Nop())

	_, err := g.Generate("GATE", "beginner", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, err = g.Generate("GATE", "beginner", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, err = g.Generate("CAT", "beginner", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestRetrievalDeterministicRanking(t *testing.T) {
	// With a warm cache and no fallback, ranking is deterministic for the
	// same corpus and request.
	bank := testBank()
	g := newRetrieval(bank)

	first, err := g.Generate("GATE", "beginner", "", 6)
	require.NoError(t, err)
	second, err := g.Generate("GATE", "beginner", "", 6)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
