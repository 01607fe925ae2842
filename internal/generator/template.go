package generator

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// Params is one shared parameter draw. The rendered question text, the
// computed answer, and the generated options all come from the same
// draw, so they are always mutually consistent.
type Params map[string]any

// Int returns the parameter as an int.
func (p Params) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the parameter as a float64.
func (p Params) Float(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Str returns the parameter as a string.
func (p Params) Str(key string) string {
	s, _ := p[key].(string)
	return s
}

// Template is one parameterized question recipe: a text pattern with
// placeholders, a parameter generator, an answer function, and an
// optional options function. An options function makes the rendered
// question an mcq with exactly 4 options; without one the question is
// short_answer. Templates are defined once and immutable at runtime.
type Template struct {
	Pattern    *template.Template
	Goal       string
	Difficulty string
	Topic      string

	GenerateParams func(r Rand) Params
	ComputeAnswer  func(p Params) (string, error)
	Options        func(p Params) ([]string, error)
}

// TemplateGenerator synthesizes questions from the static template
// catalog. Independent of the question bank and the TF-IDF index.
type TemplateGenerator struct {
	templates []Template
	rng       Rand
	log       zerolog.Logger
}

// NewTemplateGenerator creates a generator over a template catalog.
func NewTemplateGenerator(templates []Template, rng Rand, log zerolog.Logger) *TemplateGenerator {
	return &TemplateGenerator{
		templates: templates,
		rng:       rng,
		log:       log.With().Str("component", "template_generator").Logger(),
	}
}

// Generate renders exactly numQuestions synthetic questions from
// templates matching goal and difficulty. Templates are drawn with
// replacement, so repeats within a batch are allowed. Any rendering or
// computation failure aborts the whole batch. Topic is ignored:
// templates are scoped by goal and difficulty only.
func (g *TemplateGenerator) Generate(goal, difficulty, topic string, numQuestions int) ([]model.QuizQuestion, error) {
	var valid []Template
	for _, t := range g.templates {
		if t.Goal == goal && t.Difficulty == difficulty {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return nil, &NoTemplatesError{Goal: goal, Difficulty: difficulty}
	}

	questions := make([]model.QuizQuestion, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		t := valid[g.rng.Intn(len(valid))]

		q, err := g.render(t, goal, difficulty)
		if err != nil {
			g.log.Error().Err(err).
				Str("goal", goal).
				Str("difficulty", difficulty).
				Msg("Template generation failed")
			return nil, &TemplateError{Err: err}
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// render instantiates a single template with one parameter draw.
func (g *TemplateGenerator) render(t Template, goal, difficulty string) (model.QuizQuestion, error) {
	params := t.GenerateParams(g.rng)

	var buf bytes.Buffer
	if err := t.Pattern.Execute(&buf, params); err != nil {
		return model.QuizQuestion{}, fmt.Errorf("render pattern: %w", err)
	}

	answer, err := t.ComputeAnswer(params)
	if err != nil {
		return model.QuizQuestion{}, fmt.Errorf("compute answer: %w", err)
	}

	q := model.QuizQuestion{
		Goal:       goal,
		Type:       model.QuestionTypeShortAnswer,
		Question:   buf.String(),
		Answer:     answer,
		Difficulty: difficulty,
		Topic:      t.Topic,
	}

	if t.Options != nil {
		opts, err := t.Options(params)
		if err != nil {
			return model.QuizQuestion{}, fmt.Errorf("generate options: %w", err)
		}
		if len(opts) != model.McqOptionCount {
			return model.QuizQuestion{}, fmt.Errorf("template produced %d options, want %d", len(opts), model.McqOptionCount)
		}
		q.Type = model.QuestionTypeMCQ
		q.Options = opts
	}

	return q, nil
}
