package generator

import (
	"errors"
	"math/rand"
	"testing"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(bank []Template, seed int64) *TemplateGenerator {
	return NewTemplateGenerator(bank, rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func TestTemplateGenerateProducesValidQuestions(t *testing.T) {
	cases := []struct {
		goal       string
		difficulty string
	}{
		{"GATE AE", "beginner"},
		{"GATE AE", "intermediate"},
		{"GATE AE", "advanced"},
		{"Amazon SDE", "beginner"},
		{"Amazon SDE", "intermediate"},
		{"Amazon SDE", "advanced"},
		{"CAT", "beginner"},
		{"CAT", "intermediate"},
		{"CAT", "advanced"},
	}

	for _, tc := range cases {
		t.Run(tc.goal+"/"+tc.difficulty, func(t *testing.T) {
			// Some catalogs can abort a batch on an unlucky draw (the
			// quadratic recipe has no real roots for some parameters), so
			// walk seeds until a batch succeeds.
			var questions []model.QuizQuestion
			var err error
			for seed := int64(0); seed < 25; seed++ {
				questions, err = newTemplate(DefaultTemplates(), seed).Generate(tc.goal, tc.difficulty, "", 8)
				if err == nil {
					break
				}
				var tmplErr *TemplateError
				require.ErrorAs(t, err, &tmplErr)
			}
			require.NoError(t, err)
			require.Len(t, questions, 8)

			for _, q := range questions {
				require.NoError(t, q.Validate())
				assert.Equal(t, tc.goal, q.Goal)
				assert.Equal(t, tc.difficulty, q.Difficulty)
				if q.Type == model.QuestionTypeMCQ {
					assert.Len(t, q.Options, model.McqOptionCount)
				} else {
					assert.Nil(t, q.Options)
				}
			}
		})
	}
}

func TestTemplateGenerateDeterministicForSeed(t *testing.T) {
	first, err := newTemplate(DefaultTemplates(), 42).Generate("CAT", "beginner", "", 5)
	require.NoError(t, err)
	second, err := newTemplate(DefaultTemplates(), 42).Generate("CAT", "beginner", "", 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTemplateGenerateNoTemplates(t *testing.T) {
	g := newTemplate(DefaultTemplates(), 1)

	_, err := g.Generate("Unknown Goal", "beginner", "", 5)
	var noTemplates *NoTemplatesError
	require.ErrorAs(t, err, &noTemplates)
	assert.Equal(t, "Unknown Goal", noTemplates.Goal)
}

func TestTemplateGenerateIgnoresTopic(t *testing.T) {
	g := newTemplate(DefaultTemplates(), 3)

	questions, err := g.Generate("CAT", "beginner", "nonexistent topic", 5)
	require.NoError(t, err)
	assert.Len(t, questions, 5)
}

func TestTemplateGenerateDrawsWithReplacement(t *testing.T) {
	// A single-template catalog must still satisfy any batch size.
	catalog := []Template{
		{
			Pattern:    template.Must(template.New("one").Parse("What is {{.a}} plus {{.a}} in plain arithmetic?")),
			Goal:       "CAT",
			Difficulty: "beginner",
			Topic:      "arithmetic",
			GenerateParams: func(r Rand) Params {
				return Params{"a": randInt(r, 1, 10)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "even", nil
			},
		},
	}
	g := newTemplate(catalog, 1)

	questions, err := g.Generate("CAT", "beginner", "", 10)
	require.NoError(t, err)
	assert.Len(t, questions, 10)
}

func TestTemplateGenerateAbortsBatchOnFailure(t *testing.T) {
	boom := errors.New("boom")
	catalog := []Template{
		{
			Pattern:    template.Must(template.New("bad").Parse("This question always fails to compute.")),
			Goal:       "CAT",
			Difficulty: "beginner",
			Topic:      "arithmetic",
			GenerateParams: func(r Rand) Params {
				return Params{}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "", boom
			},
		},
	}
	g := newTemplate(catalog, 1)

	questions, err := g.Generate("CAT", "beginner", "", 3)
	assert.Nil(t, questions)

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.ErrorIs(t, err, boom)
}

func TestTemplateGenerateRejectsWrongOptionCount(t *testing.T) {
	catalog := []Template{
		{
			Pattern:    template.Must(template.New("opts").Parse("Pick one of the following values please.")),
			Goal:       "CAT",
			Difficulty: "beginner",
			Topic:      "arithmetic",
			GenerateParams: func(r Rand) Params {
				return Params{}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "A", nil
			},
			Options: func(p Params) ([]string, error) {
				return []string{"A", "B"}, nil
			},
		},
	}
	g := newTemplate(catalog, 1)

	_, err := g.Generate("CAT", "beginner", "", 1)
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c int
		want    string
		wantErr bool
	}{
		{"two roots", 1, -5, 6, "2.00, 3.00", false},
		{"repeated root", 1, -4, 4, "2.00", false},
		{"negative roots", 1, 3, 2, "-2.00, -1.00", false},
		{"no real roots", 1, 0, 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := solveQuadratic(tt.a, tt.b, tt.c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(7, 3))
	assert.Equal(t, -3, floorDiv(-7, 3))
	assert.Equal(t, -3, floorDiv(7, -3))
	assert.Equal(t, 2, floorDiv(-7, -3))
	assert.Equal(t, 2, floorDiv(6, 3))
}

func TestGCD(t *testing.T) {
	assert.Equal(t, 6, gcd(54, 24))
	assert.Equal(t, 1, gcd(17, 4))
	assert.Equal(t, 7, gcd(7, 0))
}

func TestTurnLoadFactor(t *testing.T) {
	// n = sqrt(1 + (v²/(g·r))²)
	got := turnLoadFactor(100, 500)
	assert.InDelta(t, 2.2708, got, 1e-3)
}

func TestParamsAccessors(t *testing.T) {
	p := Params{"i": 3, "f": 2.5, "s": "word"}
	assert.Equal(t, 3, p.Int("i"))
	assert.Equal(t, 2, p.Int("f"))
	assert.Equal(t, 2.5, p.Float("f"))
	assert.Equal(t, 3.0, p.Float("i"))
	assert.Equal(t, "word", p.Str("s"))
	assert.Equal(t, 0, p.Int("missing"))
	assert.Equal(t, "", p.Str("missing"))
}
