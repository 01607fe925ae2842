package generator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// Generator produces a batch of quiz questions for a goal and
// difficulty. Topic is an optional exact-match narrowing filter;
// implementations may ignore it. Implementations are safe for
// concurrent use.
type Generator interface {
	Generate(goal, difficulty, topic string, numQuestions int) ([]model.QuizQuestion, error)
}

// Rand is the randomness source injected into generators. Satisfied by
// *math/rand.Rand for deterministic tests; production code uses
// NewLockedRand since *rand.Rand is not safe for concurrent use.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
	Float64() float64
}

// LockedRand is a mutex-guarded non-cryptographic random source.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand creates a LockedRand seeded from the wall clock.
func NewLockedRand() *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *LockedRand) Perm(n int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Perm(n)
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
