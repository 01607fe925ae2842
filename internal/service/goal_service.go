package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/bank"
	"github.com/smartquiz/smartquiz-backend/internal/config"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/smartquiz/smartquiz-backend/internal/repository"
)

var (
	// ErrGoalNotFound is returned when acting on an unknown goal.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrGoalStatic is returned when removing a goal that comes from
	// static configuration rather than runtime management.
	ErrGoalStatic = errors.New("configured goals cannot be removed at runtime")
	// ErrGoalHasQuestions blocks removal of goals that still own
	// questions in the bank.
	ErrGoalHasQuestions = errors.New("goal still has questions in the bank")
)

// InvalidQuestionError reports a malformed question in a goal payload.
type InvalidQuestionError struct {
	Index int
	Err   error
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("question %d: %v", e.Index, e.Err)
}

func (e *InvalidQuestionError) Unwrap() error {
	return e.Err
}

// GoalTooSmallError reports that a new goal's corpus is below the
// configured minimum.
type GoalTooSmallError struct {
	Goal     string
	Provided int
	Required int
}

func (e *GoalTooSmallError) Error() string {
	return fmt.Sprintf("goal %q requires at least %d questions, got %d", e.Goal, e.Required, e.Provided)
}

// GoalService manages the runtime goal set and its question corpora,
// persisted through the question repository. Every mutation refreshes
// the quiz service against the merged corpus.
type GoalService struct {
	cfg         *config.Config
	repo        *repository.QuestionRepository
	quizService *QuizService
	loader      *bank.Loader
	fileBank    []model.QuizQuestion
	log         zerolog.Logger
}

// NewGoalService creates a GoalService. fileBank is the immutable
// corpus loaded from the bank file; repository rows are merged on top.
func NewGoalService(
	cfg *config.Config,
	repo *repository.QuestionRepository,
	quizService *QuizService,
	loader *bank.Loader,
	fileBank []model.QuizQuestion,
	log zerolog.Logger,
) *GoalService {
	return &GoalService{
		cfg:         cfg,
		repo:        repo,
		quizService: quizService,
		loader:      loader,
		fileBank:    fileBank,
		log:         log.With().Str("component", "goal_service").Logger(),
	}
}

// AddGoal registers a new goal or appends questions to an existing one.
// A new goal must end up with at least the configured minimum number of
// questions.
func (s *GoalService) AddGoal(ctx context.Context, goal string, questions []model.QuizQuestion) (*model.GoalResponse, error) {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, &InvalidQuestionError{Index: i, Err: err}
		}
		if questions[i].Goal != goal {
			return nil, &InvalidQuestionError{
				Index: i,
				Err:   fmt.Errorf("goal %q does not match %q", questions[i].Goal, goal),
			}
		}
	}

	exists := contains(s.quizService.SupportedGoals(), goal)

	if !exists {
		existing := 0
		for _, q := range s.quizService.Bank() {
			if q.Goal == goal {
				existing++
			}
		}
		if existing+len(questions) < s.cfg.MinGoalQuestions {
			return nil, &GoalTooSmallError{
				Goal:     goal,
				Provided: existing + len(questions),
				Required: s.cfg.MinGoalQuestions,
			}
		}
	}

	if len(questions) > 0 {
		if err := s.repo.InsertBatch(ctx, questions); err != nil {
			return nil, err
		}
	}
	if !exists {
		if err := s.repo.AddGoal(ctx, goal); err != nil {
			return nil, err
		}
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Goal '%s' added successfully", goal)
	if exists {
		message = fmt.Sprintf("Appended %d questions to goal '%s'", len(questions), goal)
	}

	s.log.Info().Str("goal", goal).Int("questions", len(questions)).Bool("new", !exists).Msg("Goal updated")

	return &model.GoalResponse{
		Message:        message,
		SupportedGoals: s.quizService.SupportedGoals(),
	}, nil
}

// RemoveGoal unregisters a runtime-managed goal. Removal fails while
// the goal still has questions in the bank.
func (s *GoalService) RemoveGoal(ctx context.Context, goal string) (*model.GoalResponse, error) {
	if !contains(s.quizService.SupportedGoals(), goal) {
		return nil, ErrGoalNotFound
	}
	if contains(s.cfg.SupportedGoals, goal) {
		return nil, ErrGoalStatic
	}

	for _, q := range s.quizService.Bank() {
		if q.Goal == goal {
			return nil, ErrGoalHasQuestions
		}
	}

	if err := s.repo.RemoveGoal(ctx, goal); err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.log.Info().Str("goal", goal).Msg("Goal removed")

	return &model.GoalResponse{
		Message:        fmt.Sprintf("Goal '%s' removed successfully", goal),
		SupportedGoals: s.quizService.SupportedGoals(),
	}, nil
}

// Refresh merges the file corpus with repository rows and reloads the
// quiz service against the result.
func (s *GoalService) Refresh(ctx context.Context) error {
	stored, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if err := s.loader.Validate(stored); err != nil {
		return fmt.Errorf("stored questions: %w", err)
	}

	merged := make([]model.QuizQuestion, 0, len(s.fileBank)+len(stored))
	merged = append(merged, s.fileBank...)
	merged = append(merged, stored...)

	goals, err := s.repo.ListGoals(ctx)
	if err != nil {
		return err
	}

	s.quizService.Reload(merged, goals)
	return nil
}
