package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

// Recovery turns a panic into a 500 envelope. If a file download had already
// started streaming, the status is sent and only the connection is cut short.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Error().
				Interface("error", rec).
				Str("stack", string(debug.Stack())).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(ContextRequestID)).
				Interface("user_id", c.Value(ContextUserID)).
				Msg("request panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			httputil.RespondWithError(c, apperrors.Internal("", fmt.Errorf("panic: %v", rec)))
		}()
		c.Next()
	}
}
