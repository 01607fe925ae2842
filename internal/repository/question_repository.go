package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// QuestionRepository persists goal-managed questions: goals added at
// runtime and the question corpora appended to them. The generation
// path never touches this store; the loader merges its rows into the
// in-memory bank.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListAll returns every stored question in insertion order.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.QuizQuestion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT goal, type, question, options, answer, difficulty, topic
		FROM questions
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []model.QuizQuestion
	for rows.Next() {
		var q model.QuizQuestion
		if err := rows.Scan(&q.Goal, &q.Type, &q.Question, &q.Options, &q.Answer, &q.Difficulty, &q.Topic); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// InsertBatch bulk-inserts questions via COPY.
func (r *QuestionRepository) InsertBatch(ctx context.Context, questions []model.QuizQuestion) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"questions"},
		[]string{"goal", "type", "question", "options", "answer", "difficulty", "topic"},
		pgx.CopyFromSlice(len(questions), func(i int) ([]any, error) {
			q := questions[i]
			return []any{q.Goal, string(q.Type), q.Question, q.Options, q.Answer, q.Difficulty, q.Topic}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}

// CountByGoal returns how many stored questions belong to a goal.
func (r *QuestionRepository) CountByGoal(ctx context.Context, goal string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE goal = $1`, goal,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// ListGoals returns every runtime-managed goal name.
func (r *QuestionRepository) ListGoals(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM goals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// AddGoal registers a runtime-managed goal. Idempotent.
func (r *QuestionRepository) AddGoal(ctx context.Context, goal string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO goals (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, goal,
	)
	if err != nil {
		return fmt.Errorf("add goal: %w", err)
	}
	return nil
}

// RemoveGoal deletes a runtime-managed goal.
func (r *QuestionRepository) RemoveGoal(ctx context.Context, goal string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE name = $1`, goal)
	if err != nil {
		return fmt.Errorf("remove goal: %w", err)
	}
	return nil
}
