package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

// ExposeErrors marks every request so that 500 responses include the
// underlying cause. Only enabled in development.
func ExposeErrors(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(httputil.ContextExposeErrors, enabled)
		c.Next()
	}
}
