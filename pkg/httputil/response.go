package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/passmeter/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 success response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response. Errors that are not an
// *errors.AppError become a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.As(err)
	status := appErr.StatusCode()

	body := &Error{Code: int(appErr.Code), Message: appErr.Message}
	if status < http.StatusInternalServerError && appErr.Err != nil {
		body.Details = appErr.Err.Error()
	}

	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error:   body,
	})
}
