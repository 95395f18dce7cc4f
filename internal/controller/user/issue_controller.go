package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

type IssueController struct {
	issueService service.IssueService
}

func NewIssueController(issueService service.IssueService) *IssueController {
	return &IssueController{issueService: issueService}
}

// ReportIssue godoc
// @Summary Report a problem with a question or an AI grade
// @Description Records a user-submitted issue against a question/test pair. AI_GRADING_ERROR reports must include the disputed AI feedback.
// @Tags Issues
// @Accept json
// @Produce json
// @Param issue body dto.ReportIssueDTO true "Issue report"
// @Success 201 {object} dto.ReportedIssueDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure, e.g. the question does not belong to the test"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /issues [post]
func (c *IssueController) ReportIssue(ctx *gin.Context) {
	var req dto.ReportIssueDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ReportIssue: failed to bind JSON")
		respondError(ctx, apperr.Wrap(apperr.CodeValidationError, "invalid issue report body", err))
		return
	}

	issue, err := c.issueService.Report(req)
	if err != nil {
		log.Warn().Err(err).Msg("ReportIssue: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, issue)
}
