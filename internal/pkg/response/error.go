package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON shape of every error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error body. An apperror carries its own status
// code and user-facing message; anything else is treated as unexpected,
// logged, and answered with a generic 500 so internals never leak to clients.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
