package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/domain/shared/fault"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dto.OK(data))
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Fail(message))
}

// respondError maps the fault taxonomy onto HTTP status codes. Errors
// without a kind are treated as internal and their detail is hidden.
func respondError(c *gin.Context, err error) {
	switch fault.KindOf(err) {
	case fault.KindInvalidArgument:
		respondMessage(c, http.StatusBadRequest, fault.MessageOf(err))
	case fault.KindConflict:
		respondMessage(c, http.StatusConflict, fault.MessageOf(err))
	case fault.KindNotFound:
		respondMessage(c, http.StatusNotFound, fault.MessageOf(err))
	default:
		respondMessage(c, http.StatusInternalServerError, "internal error")
	}
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondMessage(c, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
