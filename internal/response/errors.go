package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidInput   ErrCode = "INVALID_INPUT"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Generation ────────────────────────────────────────────────────
	ErrInsufficientData ErrCode = "INSUFFICIENT_DATA"
	ErrGenerationFailed ErrCode = "GENERATION_FAILED"
	ErrBankUnavailable  ErrCode = "QUESTION_BANK_UNAVAILABLE"

	// ─── Goal Management ───────────────────────────────────────────────
	ErrGoalHasQuestions ErrCode = "GOAL_HAS_QUESTIONS"
	ErrGoalTooSmall     ErrCode = "GOAL_TOO_SMALL"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "An API token is required."
	case ErrTokenInvalid:
		return "The API token is invalid."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrInvalidInput:
		return "One or more input values are not supported."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrInsufficientData:
		return "Not enough questions are available to satisfy the request."
	case ErrGenerationFailed:
		return "Question generation failed."
	case ErrBankUnavailable:
		return "The question bank is not available."
	case ErrGoalHasQuestions:
		return "The goal still has questions in the bank and cannot be removed."
	case ErrGoalTooSmall:
		return "A new goal requires a minimum number of questions."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
