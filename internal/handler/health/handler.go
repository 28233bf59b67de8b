package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db  Pinger
	now func() time.Time
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db, now: time.Now}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.LivenessCheck)
	r.GET("/health/ready", h.ReadinessCheck)
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"message":   "Nails by Brooke API is running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		httputil.RespondWithError(c, apperrors.Unavailable("Database connection failed", err))
		return
	}
	httputil.RespondWithMessage(c, "Ready")
}
