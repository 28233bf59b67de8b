package client

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skous2/nails-by-brooke/internal/handler"
	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/service/client"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

func (h *Handler) ListClients(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	clients, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"clients": clients})
}

func (h *Handler) GetClient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Client")
	if !ok {
		return
	}

	client, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"client": client})
}

func (h *Handler) CreateClient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	var req model.ClientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	client, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{"client": client})
}

func (h *Handler) UpdateClient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Client")
	if !ok {
		return
	}

	var req model.ClientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	client, err := h.svc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"client": client})
}

// DeleteClient also removes every appointment of the client.
func (h *Handler) DeleteClient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Client")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Client deleted successfully")
}
