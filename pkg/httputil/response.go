package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/skous2/nails-by-brooke/pkg/errors"
)

// ContextExposeErrors is the gin context key that, when true, adds the
// underlying cause of 500 responses to the error envelope.
const ContextExposeErrors = "expose_errors"

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// RespondWithSuccess writes payload with success=true merged in.
func RespondWithSuccess(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(status, payload)
}

// RespondWithMessage is the success shape for operations with nothing to return.
func RespondWithMessage(c *gin.Context, message string) {
	RespondWithSuccess(c, http.StatusOK, gin.H{"message": message})
}

// RespondWithError maps err onto the error envelope. Errors that are not
// AppErrors are treated as internal.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal("", err)
	}

	status := appErr.Status()
	resp := ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Details: appErr.Details,
	}

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		if c.GetBool(ContextExposeErrors) && appErr.Err != nil {
			resp.Details = append(resp.Details, appErr.Err.Error())
		}
	}

	c.AbortWithStatusJSON(status, resp)
}

// NotFound is the handler for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Success: false,
		Error:   "Endpoint not found",
	})
}
