package generator

import (
	"fmt"
	"strings"
)

// InputError reports an unsupported goal, difficulty, or mode. Always
// caller-fixable; never retried internally.
type InputError struct {
	Field     string
	Value     string
	Supported []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s must be one of [%s], got %q",
		e.Field, strings.Join(e.Supported, ", "), e.Value)
}

// NoQuestionsError reports an empty candidate set for the requested
// goal and difficulty.
type NoQuestionsError struct {
	Goal       string
	Difficulty string
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("no questions available for goal %q and difficulty %q",
		e.Goal, e.Difficulty)
}

// InsufficientDataError reports a candidate set smaller than the
// requested question count. Carries both counts for diagnosability.
type InsufficientDataError struct {
	Goal       string
	Difficulty string
	Available  int
	Required   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("requested %d questions, but only %d available for goal %q and difficulty %q",
		e.Required, e.Available, e.Goal, e.Difficulty)
}

// NoTemplatesError reports that no template matches the requested goal
// and difficulty.
type NoTemplatesError struct {
	Goal       string
	Difficulty string
}

func (e *NoTemplatesError) Error() string {
	return fmt.Sprintf("no templates available for goal %q and difficulty %q",
		e.Goal, e.Difficulty)
}

// TemplateError wraps any failure while rendering or computing a
// template instance. Fatal for the whole batch; no partial results are
// ever returned alongside it.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to generate questions: %v", e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
