package model

import "fmt"

// QuestionType distinguishes multiple-choice from free-text questions.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "mcq"
	QuestionTypeShortAnswer QuestionType = "short_answer"
)

// McqOptionCount is the exact number of options every mcq question carries.
const McqOptionCount = 4

// QuizQuestion is the canonical question record emitted by every generator
// and stored in the question bank.
type QuizQuestion struct {
	Goal       string       `json:"goal" binding:"required,min=3"`
	Type       QuestionType `json:"type" binding:"required,oneof=mcq short_answer"`
	Question   string       `json:"question" binding:"required,min=10"`
	Options    []string     `json:"options,omitempty"`
	Answer     string       `json:"answer" binding:"required"`
	Difficulty string       `json:"difficulty" binding:"required"`
	Topic      string       `json:"topic" binding:"required,min=2"`
}

// Validate enforces the record invariants outside of HTTP binding, for
// entries coming from the bank file or the database.
//
// Legacy bank exports carry short_answer entries with an empty options
// list; those are normalized to nil rather than rejected.
func (q *QuizQuestion) Validate() error {
	if len(q.Question) < 10 {
		return fmt.Errorf("question must be at least 10 characters, got %d", len(q.Question))
	}
	if len(q.Goal) < 3 {
		return fmt.Errorf("goal must be at least 3 characters, got %q", q.Goal)
	}
	if q.Answer == "" {
		return fmt.Errorf("answer must not be empty")
	}
	if q.Difficulty == "" {
		return fmt.Errorf("difficulty must not be empty")
	}
	if len(q.Topic) < 2 {
		return fmt.Errorf("topic must be at least 2 characters, got %q", q.Topic)
	}

	switch q.Type {
	case QuestionTypeMCQ:
		if len(q.Options) != McqOptionCount {
			return fmt.Errorf("mcq question must have exactly %d options, got %d", McqOptionCount, len(q.Options))
		}
	case QuestionTypeShortAnswer:
		if len(q.Options) > 0 {
			return fmt.Errorf("short_answer question must not have options, got %d", len(q.Options))
		}
		q.Options = nil
	default:
		return fmt.Errorf("type must be mcq or short_answer, got %q", q.Type)
	}

	return nil
}
