package generator

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/smartquiz/smartquiz-backend/internal/textindex"
)

// RetrievalGenerator selects questions from the bank by ranking TF-IDF
// cosine similarity between a query built from the goal and each
// candidate's document (question text + goal + topic).
//
// The generator holds no corpus state beyond the injected snapshot and
// the shared index cache, so it can be rebuilt against an updated bank
// at any time.
type RetrievalGenerator struct {
	questions  []model.QuizQuestion
	cache      *textindex.IndexCache
	rng        Rand
	defaultNum int
	maxNum     int
	log        zerolog.Logger
}

// NewRetrievalGenerator creates a retrieval generator over a bank
// snapshot. defaultNum and maxNum bound the clamping policy.
func NewRetrievalGenerator(
	questions []model.QuizQuestion,
	cache *textindex.IndexCache,
	rng Rand,
	defaultNum, maxNum int,
	log zerolog.Logger,
) *RetrievalGenerator {
	return &RetrievalGenerator{
		questions:  questions,
		cache:      cache,
		rng:        rng,
		defaultNum: defaultNum,
		maxNum:     maxNum,
		log:        log.With().Str("component", "retrieval_generator").Logger(),
	}
}

// Generate returns exactly clamp(numQuestions, defaultNum, maxNum)
// distinct questions matching goal and difficulty, ranked by similarity
// to the goal query. Ranking failures degrade to uniform random
// sampling; only an empty or undersized candidate set is fatal.
func (g *RetrievalGenerator) Generate(goal, difficulty, topic string, numQuestions int) ([]model.QuizQuestion, error) {
	candidates := g.filter(goal, difficulty)
	if len(candidates) == 0 {
		return nil, &NoQuestionsError{Goal: goal, Difficulty: difficulty}
	}

	// Clamp, never reject: raise to the default, cap at the max.
	if numQuestions > g.maxNum {
		numQuestions = g.maxNum
	}
	if numQuestions < g.defaultNum {
		numQuestions = g.defaultNum
	}

	if len(candidates) < numQuestions {
		return nil, &InsufficientDataError{
			Goal:       goal,
			Difficulty: difficulty,
			Available:  len(candidates),
			Required:   numQuestions,
		}
	}

	selected, err := g.rank(goal, difficulty, topic, candidates, numQuestions)
	if err != nil || len(selected) < numQuestions {
		if err != nil {
			g.log.Error().Err(err).
				Str("goal", goal).
				Str("difficulty", difficulty).
				Msg("TF-IDF retrieval failed, falling back to random sampling")
		} else {
			g.log.Warn().
				Str("goal", goal).
				Str("difficulty", difficulty).
				Int("ranked", len(selected)).
				Int("requested", numQuestions).
				Msg("Ranking yielded too few questions, falling back to random sampling")
		}
		selected = g.sample(candidates, numQuestions)
	}

	return scrub(selected), nil
}

func (g *RetrievalGenerator) filter(goal, difficulty string) []model.QuizQuestion {
	var matched []model.QuizQuestion
	for _, q := range g.questions {
		if q.Goal == goal && q.Difficulty == difficulty {
			matched = append(matched, q)
		}
	}
	return matched
}

// rank builds (or reuses) the candidate-set index, scores every
// candidate against the goal query, and walks the ranked list selecting
// distinct questions. Ties rank in original candidate order.
func (g *RetrievalGenerator) rank(goal, difficulty, topic string, candidates []model.QuizQuestion, numQuestions int) ([]model.QuizQuestion, error) {
	key := textindex.CacheKey(goal, difficulty)

	idx, ok := g.cache.Get(key)
	if !ok {
		docs := make([]string, len(candidates))
		for i, q := range candidates {
			docs[i] = fmt.Sprintf("%s %s %s", q.Question, q.Goal, q.Topic)
		}
		// No vocabulary cap on the per-request path.
		idx = textindex.BuildIndex(docs, 0)
		g.cache.Put(key, idx)
	}

	// A cached index built over a different candidate set (corpus changed
	// under the same key) cannot be trusted.
	if len(idx.Vectors) != len(candidates) {
		return nil, fmt.Errorf("cached index covers %d documents, candidate set has %d", len(idx.Vectors), len(candidates))
	}

	query := idx.Vectorizer.Transform(goal)
	sims := idx.Similarities(query)

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	selected := make([]model.QuizQuestion, 0, numQuestions)
	seen := make(map[int]struct{}, numQuestions)
	for _, i := range order {
		if len(selected) >= numQuestions {
			break
		}
		if _, dup := seen[i]; dup {
			continue
		}
		if topic != "" && candidates[i].Topic != topic {
			continue
		}
		seen[i] = struct{}{}
		selected = append(selected, candidates[i])
	}
	return selected, nil
}

// sample draws numQuestions distinct questions uniformly at random from
// the candidate set. Callers guarantee len(candidates) >= numQuestions.
func (g *RetrievalGenerator) sample(candidates []model.QuizQuestion, numQuestions int) []model.QuizQuestion {
	perm := g.rng.Perm(len(candidates))
	sampled := make([]model.QuizQuestion, numQuestions)
	for i := 0; i < numQuestions; i++ {
		sampled[i] = candidates[perm[i]]
	}
	return sampled
}

// scrub copies the selection, forcing options to nil on short_answer
// questions regardless of source data.
func scrub(questions []model.QuizQuestion) []model.QuizQuestion {
	out := make([]model.QuizQuestion, len(questions))
	for i, q := range questions {
		if q.Type == model.QuestionTypeShortAnswer {
			q.Options = nil
		}
		out[i] = q
	}
	return out
}
