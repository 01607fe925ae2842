package model

// GenerateQuizRequest is the payload for generating a quiz.
type GenerateQuizRequest struct {
	Goal         string `json:"goal" binding:"required,min=1"`
	Difficulty   string `json:"difficulty" binding:"required,min=1"`
	NumQuestions int    `json:"num_questions" binding:"required,min=1,max=10"`
	// Mode selects the generation strategy. Empty falls back to the
	// configured default.
	Mode string `json:"mode,omitempty"`
	// Topic narrows retrieval selection to an exact topic match.
	Topic string `json:"topic,omitempty"`
}

// Quiz is an issued batch of questions identified by an opaque quiz ID.
type Quiz struct {
	QuizID    string         `json:"quiz_id"`
	Goal      string         `json:"goal"`
	Questions []QuizQuestion `json:"questions"`
}

// QuestionSearchResponse carries ranked bank matches for a free-text
// query.
type QuestionSearchResponse struct {
	Query     string         `json:"query"`
	Questions []QuizQuestion `json:"questions"`
}

// GoalRequest is the payload for adding or removing a supported goal.
type GoalRequest struct {
	Goal   string `json:"goal" binding:"required,min=1"`
	Action string `json:"action" binding:"required,oneof=add remove"`
	// Questions optionally seeds or extends the goal's corpus.
	Questions []QuizQuestion `json:"questions,omitempty" binding:"omitempty,dive"`
}

// GoalResponse reports the outcome of a goal action.
type GoalResponse struct {
	Message        string   `json:"message"`
	SupportedGoals []string `json:"supported_goals"`
}

// ConfigResponse exposes the generator configuration to clients.
type ConfigResponse struct {
	GeneratorMode  string   `json:"generator_mode"`
	Version        string   `json:"version"`
	SupportedGoals []string `json:"goal"`
	SupportedTypes []string `json:"type"`
}

// HealthResponse reports service health with per-dependency details.
type HealthResponse struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// LocalMetrics is a snapshot of in-process request metrics, per route
// plus an aggregate summary across all routes.
type LocalMetrics struct {
	RequestCount   map[string]int64   `json:"request_count"`
	AverageLatency map[string]float64 `json:"average_latency"`
	ErrorCount     map[string]int64   `json:"error_count"`
	Summary        MetricsSummary     `json:"summary"`
}

// MetricsSummary aggregates the per-route counters.
type MetricsSummary struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	ErrorRate      float64 `json:"error_rate"`
	AverageLatency float64 `json:"average_latency"`
}
