package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminTestService service.AdminTestService
	issueService     service.IssueService
}

func NewAdminController(adminTestService service.AdminTestService, issueService service.IssueService) *AdminController {
	return &AdminController{adminTestService: adminTestService, issueService: issueService}
}

func respondError(ctx *gin.Context, err error) {
	ae := apperr.From(err)
	ctx.JSON(ae.HTTPStatus(), dto.ErrorResponse{Error: string(ae.Code), Message: ae.Message})
}

// CreateTest godoc
// @Summary (Admin) Create a test with its questions
// @Description Creates a test, its questions, answers, categories and tags in one request.
// @Tags Admin
// @Accept json
// @Produce json
// @Param test body dto.TestCreateDTO true "Test data including questions"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid test or question data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: failed to bind JSON")
		respondError(ctx, apperr.Wrap(apperr.CodeValidationError, "invalid test body", err))
		return
	}

	test, err := c.adminTestService.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin CreateTest: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// ListIssues godoc
// @Summary (Admin) List reported issues
// @Description Lists reported issues, optionally filtered by status.
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status (NEW, IN_PROGRESS, RESOLVED, REJECTED)"
// @Success 200 {array} dto.ReportedIssueDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown status filter"
// @Router /admin/issues [get]
func (c *AdminController) ListIssues(ctx *gin.Context) {
	var status *model.IssueStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed := model.IssueStatus(raw)
		if !parsed.Valid() {
			respondError(ctx, apperr.New(apperr.CodeValidationError, "unknown issue status filter"))
			return
		}
		status = &parsed
	}

	issues, err := c.issueService.List(status)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListIssues: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, issues)
}

// UpdateIssueStatus godoc
// @Summary (Admin) Transition an issue's status
// @Description Applies an administrative status transition. Resolved and rejected issues are terminal.
// @Tags Admin
// @Accept json
// @Produce json
// @Param issue_id path string true "Issue identifier"
// @Param status body dto.IssueStatusUpdateDTO true "Target status"
// @Success 200 {object} dto.ReportedIssueDTO
// @Failure 400 {object} dto.ErrorResponse "Disallowed transition"
// @Failure 404 {object} dto.ErrorResponse "Issue not found"
// @Router /admin/issues/{issue_id}/status [patch]
func (c *AdminController) UpdateIssueStatus(ctx *gin.Context) {
	issueID, err := uuid.Parse(ctx.Param("issue_id"))
	if err != nil {
		respondError(ctx, apperr.New(apperr.CodeInvalidParameterFormat, "invalid issue identifier"))
		return
	}

	var req dto.IssueStatusUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin UpdateIssueStatus: failed to bind JSON")
		respondError(ctx, apperr.Wrap(apperr.CodeValidationError, "invalid status body", err))
		return
	}

	issue, err := c.issueService.UpdateStatus(issueID, model.IssueStatus(req.Status))
	if err != nil {
		log.Warn().Err(err).Str("issueID", issueID.String()).Msg("Admin UpdateIssueStatus: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, issue)
}
