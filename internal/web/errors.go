package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/pkg/core"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// validationError maps a core.ValidationError to a 400 carrying its reason.
func validationError(err error) (apiError, bool) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return newBadRequestError(ve.Reason), true
	}
	return apiError{}, false
}

// panelError is the per-panel failure shown on the dashboard.
type panelError struct {
	Error string `json:"error"`
}
