package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/config"
	"github.com/smartquiz/smartquiz-backend/internal/generator"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/smartquiz/smartquiz-backend/internal/repository"
	"github.com/smartquiz/smartquiz-backend/internal/textindex"
)

// ErrBankUnavailable is returned when retrieval mode is requested
// against an empty question bank.
var ErrBankUnavailable = errors.New("question bank not available")

// QuizStorer persists issued quizzes for later retrieval. Satisfied by
// repository.QuizStore; nil disables persistence.
type QuizStorer interface {
	Save(ctx context.Context, quiz *model.Quiz) error
	Get(ctx context.Context, quizID string) (*model.Quiz, error)
}

// QuizService validates generation requests, dispatches to the
// configured generator, and issues quiz IDs. It can be re-pointed at an
// updated corpus at any time via Reload.
type QuizService struct {
	cfg   *config.Config
	store QuizStorer
	rng   generator.Rand
	cache *textindex.IndexCache
	log   zerolog.Logger

	mu             sync.RWMutex
	bank           []model.QuizQuestion
	supportedGoals []string
	generators     map[string]generator.Generator
	corpusIndex    *textindex.Index
}

// NewQuizService creates a QuizService over an initial bank snapshot.
// extraGoals extends the configured goal set with runtime-managed goals.
func NewQuizService(
	cfg *config.Config,
	bank []model.QuizQuestion,
	extraGoals []string,
	cache *textindex.IndexCache,
	store QuizStorer,
	rng generator.Rand,
	log zerolog.Logger,
) *QuizService {
	s := &QuizService{
		cfg:   cfg,
		store: store,
		rng:   rng,
		cache: cache,
		log:   log.With().Str("component", "quiz_service").Logger(),
	}
	s.Reload(bank, extraGoals)
	return s
}

// Reload swaps the corpus snapshot and goal set, rebuilds the
// generators, and invalidates the index cache so stale candidate-set
// indexes are never consulted.
func (s *QuizService) Reload(bank []model.QuizQuestion, extraGoals []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bank = bank
	s.supportedGoals = mergeGoals(s.cfg.SupportedGoals, extraGoals)
	s.cache.Invalidate()

	// Corpus-wide index for bank search. Unlike the per-request indexes
	// this one covers every question and caps the vocabulary.
	docs := make([]string, len(bank))
	for i, q := range bank {
		docs[i] = fmt.Sprintf("%s %s %s", q.Question, q.Goal, q.Topic)
	}
	s.corpusIndex = textindex.BuildIndex(docs, s.cfg.MaxFeatures)

	s.generators = map[string]generator.Generator{
		"retrieval": generator.NewRetrievalGenerator(
			bank, s.cache, s.rng, s.cfg.DefaultNumQuestions, s.cfg.MaxQuestions, s.log),
		"template": generator.NewTemplateGenerator(generator.DefaultTemplates(), s.rng, s.log),
	}

	s.log.Info().
		Int("questions", len(bank)).
		Int("goals", len(s.supportedGoals)).
		Msg("Quiz service reloaded")
}

// Generate validates the request, runs the selected generator, and
// returns an issued quiz. The quiz is stored best-effort for later
// retrieval by ID.
func (s *QuizService) Generate(ctx context.Context, req model.GenerateQuizRequest) (*model.Quiz, error) {
	s.mu.RLock()
	goals := s.supportedGoals
	generators := s.generators
	bankSize := len(s.bank)
	s.mu.RUnlock()

	if !contains(goals, req.Goal) {
		return nil, &generator.InputError{Field: "goal", Value: req.Goal, Supported: goals}
	}
	if !contains(s.cfg.SupportedDifficulties, req.Difficulty) {
		return nil, &generator.InputError{Field: "difficulty", Value: req.Difficulty, Supported: s.cfg.SupportedDifficulties}
	}

	mode := req.Mode
	if mode == "" {
		mode = s.cfg.GeneratorMode
	}
	gen, ok := generators[mode]
	if !ok || !contains(s.cfg.SupportedModes, mode) {
		return nil, &generator.InputError{Field: "mode", Value: mode, Supported: s.cfg.SupportedModes}
	}

	if mode == "retrieval" && bankSize == 0 {
		return nil, ErrBankUnavailable
	}

	questions, err := gen.Generate(req.Goal, req.Difficulty, req.Topic, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		QuizID:    s.newQuizID(),
		Goal:      req.Goal,
		Questions: questions,
	}

	if s.store != nil {
		if err := s.store.Save(ctx, quiz); err != nil {
			// Persistence is best-effort; the generated quiz is still valid.
			s.log.Warn().Err(err).Str("quiz_id", quiz.QuizID).Msg("Failed to store quiz")
		}
	}

	return quiz, nil
}

// GetQuiz fetches a previously issued quiz by ID.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error) {
	if s.store == nil {
		return nil, repository.ErrQuizNotFound
	}
	return s.store.Get(ctx, quizID)
}

// GetAllQuestions returns the entire bank wrapped in a quiz payload.
func (s *QuizService) GetAllQuestions() *model.Quiz {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal := ""
	if len(s.bank) > 0 {
		goal = s.bank[0].Goal
	}
	questions := make([]model.QuizQuestion, len(s.bank))
	copy(questions, s.bank)

	return &model.Quiz{
		QuizID:    s.newQuizID(),
		Goal:      goal,
		Questions: questions,
	}
}

// SearchQuestions ranks the whole bank against a free-text query over
// the corpus-wide index and returns the top matches. limit is clamped
// to the configured maximum; zero-similarity questions are never
// returned.
func (s *QuizService) SearchQuestions(query string, limit int) []model.QuizQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bank) == 0 {
		return nil
	}
	if limit <= 0 || limit > s.cfg.MaxQuestions {
		limit = s.cfg.MaxQuestions
	}

	qv := s.corpusIndex.Vectorizer.Transform(query)
	sims := s.corpusIndex.Similarities(qv)

	order := make([]int, len(s.bank))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	matches := make([]model.QuizQuestion, 0, limit)
	for _, i := range order {
		if len(matches) >= limit || sims[i] == 0 {
			break
		}
		q := s.bank[i]
		if q.Type == model.QuestionTypeShortAnswer {
			q.Options = nil
		}
		matches = append(matches, q)
	}
	return matches
}

// GetConfig exposes the generator configuration.
func (s *QuizService) GetConfig() model.ConfigResponse {
	return model.ConfigResponse{
		GeneratorMode:  s.cfg.GeneratorMode,
		Version:        s.cfg.Version,
		SupportedGoals: s.SupportedGoals(),
		SupportedTypes: s.cfg.SupportedTypes,
	}
}

// SupportedGoals returns the current goal set (configured + runtime).
func (s *QuizService) SupportedGoals() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goals := make([]string, len(s.supportedGoals))
	copy(goals, s.supportedGoals)
	return goals
}

// Bank returns a snapshot of the current corpus.
func (s *QuizService) Bank() []model.QuizQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bank := make([]model.QuizQuestion, len(s.bank))
	copy(bank, s.bank)
	return bank
}

// newQuizID issues an opaque quiz identifier.
func (s *QuizService) newQuizID() string {
	return fmt.Sprintf("quiz_%d", 1000+s.rng.Intn(9000))
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func mergeGoals(configured, extra []string) []string {
	merged := make([]string, 0, len(configured)+len(extra))
	merged = append(merged, configured...)
	for _, g := range extra {
		if !contains(merged, g) {
			merged = append(merged, g)
		}
	}
	return merged
}
