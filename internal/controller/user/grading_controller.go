package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

type GradingController struct {
	gradingService service.GradingService
}

func NewGradingController(gradingService service.GradingService) *GradingController {
	return &GradingController{gradingService: gradingService}
}

// CheckAnswer godoc
// @Summary Dispatch an open answer for AI grading
// @Description Accepts an open-ended answer plus grading criteria and returns a task identifier immediately. Poll the companion endpoint for the result.
// @Tags Grading
// @Accept json
// @Produce json
// @Param answer body dto.GradeRequestDTO true "Answer, criteria, question text and max points"
// @Success 202 {object} dto.GradeDispatchedDTO
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 503 {object} dto.ErrorResponse "Grading service not configured"
// @Router /answers/check [post]
func (c *GradingController) CheckAnswer(ctx *gin.Context) {
	var req dto.GradeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CheckAnswer: failed to bind JSON")
		respondError(ctx, apperr.New(apperr.CodeMissingParameters,
			"userAnswer, gradingCriteria, questionText and maxPoints are all required"))
		return
	}

	taskID, err := c.gradingService.Dispatch(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("CheckAnswer: dispatch failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, dto.GradeDispatchedDTO{TaskID: taskID})
}

// GetGradingResult godoc
// @Summary Poll a grading task
// @Description Returns the task's current status; data stays null until the task succeeds.
// @Tags Grading
// @Produce json
// @Param task_id path string true "Grading task identifier"
// @Success 200 {object} dto.GradeStatusDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown task identifier"
// @Router /answers/check/{task_id} [get]
func (c *GradingController) GetGradingResult(ctx *gin.Context) {
	taskID := ctx.Param("task_id")

	status, err := c.gradingService.Result(ctx.Request.Context(), taskID)
	if err != nil {
		log.Warn().Err(err).Str("taskID", taskID).Msg("GetGradingResult: lookup failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}
