package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// Loader parses and validates the external question corpus into typed
// in-memory records.
type Loader struct {
	// Workers is the validation pool size used for large corpora.
	Workers int
	// ParallelThreshold is the corpus size above which validation fans
	// out across the pool. Smaller corpora validate inline.
	ParallelThreshold int

	log zerolog.Logger
}

// NewLoader creates a Loader with the given pool bounds.
func NewLoader(workers, parallelThreshold int, log zerolog.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		Workers:           workers,
		ParallelThreshold: parallelThreshold,
		log:               log.With().Str("component", "bank_loader").Logger(),
	}
}

// LoadFile reads and validates the question bank JSON file.
func (l *Loader) LoadFile(path string) ([]model.QuizQuestion, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var questions []model.QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	if err := l.Validate(questions); err != nil {
		return nil, err
	}

	l.log.Info().
		Str("path", path).
		Int("count", len(questions)).
		Msg("Question bank loaded")

	return questions, nil
}

// Validate checks every record's invariants. Corpora above the parallel
// threshold fan out across the worker pool; output order always matches
// input order since validation mutates records in place by index.
func (l *Loader) Validate(questions []model.QuizQuestion) error {
	if len(questions) <= l.ParallelThreshold {
		for i := range questions {
			if err := questions[i].Validate(); err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
		}
		return nil
	}

	errs := make([]error, len(questions))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < l.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				errs[i] = questions[i].Validate()
			}
		}()
	}

	for i := range questions {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Stats summarizes a corpus for health reporting.
type Stats struct {
	Total  int
	ByGoal map[string]int
	ByType map[string]int
}

// Summarize counts questions by goal and type.
func Summarize(questions []model.QuizQuestion) Stats {
	s := Stats{
		Total:  len(questions),
		ByGoal: make(map[string]int),
		ByType: make(map[string]int),
	}
	for _, q := range questions {
		s.ByGoal[q.Goal]++
		s.ByType[string(q.Type)]++
	}
	return s
}
