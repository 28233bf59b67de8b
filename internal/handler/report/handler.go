package report

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/skous2/nails-by-brooke/internal/export"
	"github.com/skous2/nails-by-brooke/internal/handler"
	"github.com/skous2/nails-by-brooke/internal/middleware"
	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/service/report"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/summary/pdf", h.SummaryPDF)
		reports.POST("/summary/email", h.EmailSummary)
		reports.GET("/detailed", h.Detailed)
		reports.GET("/detailed/pdf", h.detailedFile(export.FormatPDF))
		reports.GET("/detailed/csv", h.detailedFile(export.FormatCSV))
		reports.GET("/detailed/xlsx", h.detailedFile(export.FormatXLSX))
	}
}

// query reads year and client_id. The year never fails: out of range values
// fall back to the current year.
func (h *Handler) query(c *gin.Context) (model.ReportQuery, bool) {
	q, err := h.svc.Query(c.Query("year"), c.Query("client_id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return q, false
	}
	return q, true
}

func (h *Handler) Summary(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID, q)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"year":    summary.Year,
		"monthly": summary.Monthly,
		"annual":  summary.Annual,
	})
}

func (h *Handler) SummaryPDF(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}

	file, err := h.svc.SummaryPDF(c.Request.Context(), userID, q)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	sendFile(c, file)
}

func (h *Handler) EmailSummary(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	claims, _ := middleware.Claims(c)

	var req model.EmailReportRequest
	if !handler.BindOptionalJSON(c, &req) {
		return
	}

	rawYear := ""
	if req.Year != nil {
		rawYear = strconv.Itoa(*req.Year)
	}
	q, err := h.svc.Query(rawYear, "")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	to := req.To
	if to == "" && claims != nil {
		to = claims.Email
	}

	if err := h.svc.EmailSummary(c.Request.Context(), userID, q, to); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, fmt.Sprintf("Summary for %d sent to %s", q.Year, to))
}

func (h *Handler) Detailed(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}

	detailed, err := h.svc.Detailed(c.Request.Context(), userID, q)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	resp := gin.H{
		"year":         detailed.Year,
		"appointments": detailed.Appointments,
		"totals":       detailed.Totals,
	}
	if detailed.ClientID != nil {
		resp["client_id"] = detailed.ClientID
		resp["client_name"] = detailed.ClientName
	}
	httputil.RespondWithSuccess(c, http.StatusOK, resp)
}

func (h *Handler) detailedFile(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := handler.UserID(c)
		if !ok {
			return
		}
		q, ok := h.query(c)
		if !ok {
			return
		}

		file, detailed, err := h.svc.DetailedFile(c.Request.Context(), userID, q, format)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}

		c.Header(middleware.HeaderReportCount, strconv.Itoa(detailed.Totals.Count))
		c.Header(middleware.HeaderReportGrandTotal, detailed.Totals.GrandTotal.String())
		sendFile(c, file)
	}
}

// sendFile writes a rendered file. Once the status is sent a failed write can
// only be logged.
func sendFile(c *gin.Context, file *export.File) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Header("Content-Type", file.ContentType)
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(file.Data); err != nil {
		log.Warn().
			Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("file", file.Name).
			Msg("failed to send report file")
	}
}
