package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skous2/nails-by-brooke/internal/handler"
	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/service/appointment"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.PATCH("/:id/payment", h.UpdatePayment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// ListAppointments accepts paid, start_date, end_date and client_id filters.
func (h *Handler) ListAppointments(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	q := handler.NewQueryParser(c)
	filter := model.AppointmentFilter{
		Paid:     q.Bool("paid", "Paid filter must be true or false"),
		Dates:    q.Dates(),
		ClientID: q.UUID("client_id", "Valid client ID is required"),
	}
	if !q.Done() {
		return
	}

	appointments, err := h.svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Appointment")
	if !ok {
		return
	}

	appointment, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointment": appointment})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	var req model.AppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appointment, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{"appointment": appointment})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Appointment")
	if !ok {
		return
	}

	var req model.AppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appointment, err := h.svc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointment": appointment})
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Appointment")
	if !ok {
		return
	}

	var req model.PaymentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	status, err := h.svc.UpdatePayment(c.Request.Context(), userID, id, *req.Paid)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointment": status})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "Appointment")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Appointment deleted successfully")
}
