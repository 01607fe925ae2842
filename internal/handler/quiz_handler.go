package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/generator"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/smartquiz/smartquiz-backend/internal/repository"
	"github.com/smartquiz/smartquiz-backend/internal/response"
	"github.com/smartquiz/smartquiz-backend/internal/service"
	"github.com/smartquiz/smartquiz-backend/internal/validator"
)

// QuizHandler serves quiz generation and retrieval endpoints.
type QuizHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(quizService *service.QuizService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		log:         log.With().Str("component", "quiz_handler").Logger(),
	}
}

// Generate handles POST /api/v1/generate.
func (h *QuizHandler) Generate(c *gin.Context) {
	var req model.GenerateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Generate(c.Request.Context(), req)
	if err != nil {
		h.handleGenerationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, quiz)
}

// GetQuiz handles GET /api/v1/quizzes/:quiz_id.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.GetQuiz(c.Request.Context(), c.Param("quiz_id"))
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to fetch quiz")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, quiz)
}

// GetAllQuestions handles GET /api/v1/questions. With a search query it
// returns the bank ranked against the query instead of the full dump.
func (h *QuizHandler) GetAllQuestions(c *gin.Context) {
	if query := c.Query("search"); query != "" {
		limit, _ := strconv.Atoi(c.Query("limit"))
		response.Success(c, http.StatusOK, model.QuestionSearchResponse{
			Query:     query,
			Questions: h.quizService.SearchQuestions(query, limit),
		})
		return
	}
	response.Success(c, http.StatusOK, h.quizService.GetAllQuestions())
}

// GetConfig handles GET /api/v1/config.
func (h *QuizHandler) GetConfig(c *gin.Context) {
	response.Success(c, http.StatusOK, h.quizService.GetConfig())
}

// handleGenerationError maps generation failures to API error codes.
// Caller-fixable problems get 400s with the precise reason; template
// failures stay generic because the details describe internal state.
func (h *QuizHandler) handleGenerationError(c *gin.Context, err error) {
	var inputErr *generator.InputError
	if errors.As(err, &inputErr) {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidInput, inputErr.Error())
		return
	}

	var noQuestions *generator.NoQuestionsError
	if errors.As(err, &noQuestions) {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInsufficientData, noQuestions.Error())
		return
	}

	var insufficient *generator.InsufficientDataError
	if errors.As(err, &insufficient) {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInsufficientData, insufficient.Error())
		return
	}

	var noTemplates *generator.NoTemplatesError
	if errors.As(err, &noTemplates) {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInsufficientData, noTemplates.Error())
		return
	}

	var templateErr *generator.TemplateError
	if errors.As(err, &templateErr) {
		h.log.Error().Err(err).Msg("Template generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrGenerationFailed)
		return
	}

	if errors.Is(err, service.ErrBankUnavailable) {
		response.Fail(c, http.StatusInternalServerError, response.ErrBankUnavailable)
		return
	}

	h.log.Error().Err(err).Msg("Quiz generation failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
