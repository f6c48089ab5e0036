package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/user-management-console/internal/pkg/apperror"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as JSON and aborts the chain.
// Anything that is not an *apperror.AppError becomes an opaque 500.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Status, ErrorResponse{Error: appErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
