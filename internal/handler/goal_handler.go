package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/smartquiz/smartquiz-backend/internal/model"
	"github.com/smartquiz/smartquiz-backend/internal/response"
	"github.com/smartquiz/smartquiz-backend/internal/service"
	"github.com/smartquiz/smartquiz-backend/internal/validator"
)

// GoalHandler serves the token-guarded goal management endpoint.
type GoalHandler struct {
	goalService *service.GoalService
	log         zerolog.Logger
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(goalService *service.GoalService, log zerolog.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		log:         log.With().Str("component", "goal_handler").Logger(),
	}
}

// ManageGoal handles POST /api/v1/goals.
func (h *GoalHandler) ManageGoal(c *gin.Context) {
	var req model.GoalRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var (
		result *model.GoalResponse
		err    error
	)
	switch req.Action {
	case "add":
		result, err = h.goalService.AddGoal(c.Request.Context(), req.Goal, req.Questions)
	case "remove":
		result, err = h.goalService.RemoveGoal(c.Request.Context(), req.Goal)
	}

	if err != nil {
		h.handleGoalError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *GoalHandler) handleGoalError(c *gin.Context, err error) {
	var (
		tooSmall *service.GoalTooSmallError
		invalidQ *service.InvalidQuestionError
	)
	switch {
	case errors.As(err, &invalidQ):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, invalidQ.Error())
	case errors.As(err, &tooSmall):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrGoalTooSmall, tooSmall.Error())
	case errors.Is(err, service.ErrGoalNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrGoalStatic):
		response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, err.Error())
	case errors.Is(err, service.ErrGoalHasQuestions):
		response.Fail(c, http.StatusConflict, response.ErrGoalHasQuestions)
	default:
		h.log.Error().Err(err).Msg("Goal management failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
