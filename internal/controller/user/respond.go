package user

import (
	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
)

// respondError renders any service error with its code-specific status.
// Non-apperr errors collapse to a generic 500 so internals never leak.
func respondError(ctx *gin.Context, err error) {
	ae := apperr.From(err)
	ctx.JSON(ae.HTTPStatus(), dto.ErrorResponse{Error: string(ae.Code), Message: ae.Message})
}
