package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skous2/nails-by-brooke/internal/handler"
	"github.com/skous2/nails-by-brooke/internal/service/dashboard"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/stats", h.Stats)
		dash.GET("/recent", h.Recent)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	q := handler.NewQueryParser(c)
	dates := q.Dates()
	if !q.Done() {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), userID, dates)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) Recent(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	q := handler.NewQueryParser(c)
	limit := q.Int("limit", dashboard.DefaultRecentLimit, "Limit must be a number")
	if !q.Done() {
		return
	}

	recent, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"recent_appointments": recent})
}
