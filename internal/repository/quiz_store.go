package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// ErrQuizNotFound is returned when a quiz ID is unknown or expired.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizStore keeps issued quizzes in Redis so clients can re-fetch a
// generated batch by its ID until the TTL runs out.
type QuizStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuizStore creates a QuizStore with the given retention TTL.
func NewQuizStore(rdb *redis.Client, ttl time.Duration) *QuizStore {
	return &QuizStore{rdb: rdb, ttl: ttl}
}

func quizKey(quizID string) string {
	return fmt.Sprintf("quiz:%s", quizID)
}

// Save stores a quiz payload under its ID.
func (s *QuizStore) Save(ctx context.Context, quiz *model.Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	if err := s.rdb.Set(ctx, quizKey(quiz.QuizID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store quiz: %w", err)
	}
	return nil
}

// Get fetches a stored quiz by ID.
func (s *QuizStore) Get(ctx context.Context, quizID string) (*model.Quiz, error) {
	raw, err := s.rdb.Get(ctx, quizKey(quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch quiz: %w", err)
	}

	var quiz model.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return &quiz, nil
}
