package user

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	catalogService   service.CatalogService
	selectionService service.QuestionSelectionService
}

func NewQuizController(catalogService service.CatalogService, selectionService service.QuestionSelectionService) *QuizController {
	return &QuizController{catalogService: catalogService, selectionService: selectionService}
}

// ListTests godoc
// @Summary List available tests
// @Description Returns metadata for every test in the store, including the closed/open/total question breakdown.
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestMetadataDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *QuizController) ListTests(ctx *gin.Context) {
	tests, err := c.catalogService.ListTests()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetQuestions godoc
// @Summary Draw a randomized question set
// @Description Samples questions without replacement from the union of the given tests, shuffles presentation and answer order, and remaps correct indices.
// @Tags Questions
// @Produce json
// @Param categories query string true "Comma-separated test identifiers"
// @Param num_questions query int true "Requested number of questions (clamped to the eligible pool size)"
// @Param mode query string false "Question mode filter: open, closed or mixed (default mixed)"
// @Success 200 {array} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed parameters, or invalid mode"
// @Failure 404 {object} dto.ErrorResponse "No questions match the test/mode combination"
// @Failure 500 {object} dto.ErrorResponse "Serialization or internal error"
// @Router /questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	categoriesStr := ctx.Query("categories")
	numQuestionsStr := ctx.Query("num_questions")
	modeStr := strings.ToLower(ctx.DefaultQuery("mode", string(service.ModeMixed)))

	if categoriesStr == "" || numQuestionsStr == "" {
		respondError(ctx, apperr.New(apperr.CodeMissingParameters,
			"the 'categories' and 'num_questions' parameters are required"))
		return
	}

	mode, err := service.ParseSelectionMode(modeStr)
	if err != nil {
		respondError(ctx, err)
		return
	}

	numQuestions, err := strconv.Atoi(numQuestionsStr)
	if err != nil || numQuestions < 1 {
		respondError(ctx, apperr.New(apperr.CodeInvalidParameterFormat,
			"num_questions must be a positive integer"))
		return
	}

	var testIDs []uuid.UUID
	for _, raw := range strings.Split(categoriesStr, ",") {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			respondError(ctx, apperr.New(apperr.CodeInvalidParameterFormat,
				fmt.Sprintf("%q is not a valid test identifier", raw)))
			return
		}
		testIDs = append(testIDs, id)
	}

	questions, err := c.selectionService.SelectQuestions(testIDs, numQuestions, mode)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Int("requested", numQuestions).Msg("GetQuestions: selection failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
