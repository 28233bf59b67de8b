package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skous2/nails-by-brooke/internal/email"
	"github.com/skous2/nails-by-brooke/internal/export"
	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
	"github.com/skous2/nails-by-brooke/pkg/metrics"
)

const (
	reportSummary  = "summary"
	reportDetailed = "detailed"
)

type Service struct {
	reports  repository.ReportRepository
	clients  repository.ClientRepository
	renderer *export.Renderer
	email    email.Service
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewService wires the report service. emailSvc may be nil, in which case
// EmailSummary reports the feature as unavailable.
func NewService(reports repository.ReportRepository, clients repository.ClientRepository,
	renderer *export.Renderer, emailSvc email.Service, m *metrics.Metrics) *Service {
	return &Service{
		reports:  reports,
		clients:  clients,
		renderer: renderer,
		email:    emailSvc,
		metrics:  m,
		now:      time.Now,
	}
}

// ResolveYear parses a year query value. Anything that is not an integer
// strictly between 2000 and 2100 yields the current year.
func ResolveYear(raw string, now time.Time) int {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return now.Year()
	}
	return clampYear(y, now)
}

func clampYear(y int, now time.Time) int {
	if y <= 2000 || y >= 2100 {
		return now.Year()
	}
	return y
}

// Query builds a ReportQuery from raw request values. An empty clientID means
// every client; a malformed one is a validation error.
func (s *Service) Query(rawYear, rawClientID string) (model.ReportQuery, error) {
	q := model.ReportQuery{Year: ResolveYear(rawYear, s.now())}

	if rawClientID = strings.TrimSpace(rawClientID); rawClientID != "" {
		id, err := uuid.Parse(rawClientID)
		if err != nil {
			return q, apperrors.Validation("Valid client ID is required")
		}
		q.ClientID = &id
	}
	return q, nil
}

// Summary returns paid totals per month of the year and per year overall.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, q model.ReportQuery) (*model.SummaryReport, error) {
	if q.ClientID != nil {
		if _, err := s.client(ctx, userID, *q.ClientID); err != nil {
			return nil, err
		}
	}

	monthly, err := s.reports.MonthlyTotals(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	annual, err := s.reports.AnnualTotals(ctx, userID, q.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	if monthly == nil {
		monthly = []model.MonthlyTotal{}
	}
	if annual == nil {
		annual = []model.AnnualTotal{}
	}
	return &model.SummaryReport{Year: q.Year, Monthly: monthly, Annual: annual}, nil
}

// Detailed lists every paid appointment in the year with totals computed over
// exactly the rows returned.
func (s *Service) Detailed(ctx context.Context, userID uuid.UUID, q model.ReportQuery) (*model.DetailedReport, error) {
	report := &model.DetailedReport{Year: q.Year}

	if q.ClientID != nil {
		client, err := s.client(ctx, userID, *q.ClientID)
		if err != nil {
			return nil, err
		}
		report.ClientID = &client.ID
		report.ClientName = &client.Name
	}

	rows, err := s.reports.PaidAppointments(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to build detailed report: %w", err)
	}
	if rows == nil {
		rows = []model.DetailedRow{}
	}

	totals := model.ReportTotals{
		ServiceTotal: model.ZeroMoney,
		TipTotal:     model.ZeroMoney,
		GrandTotal:   model.ZeroMoney,
	}
	for i := range rows {
		rows[i].Total = rows[i].Price.Plus(rows[i].Tip)
		totals.ServiceTotal = totals.ServiceTotal.Plus(rows[i].Price)
		totals.TipTotal = totals.TipTotal.Plus(rows[i].Tip)
		totals.GrandTotal = totals.GrandTotal.Plus(rows[i].Total)
	}
	totals.Count = len(rows)

	report.Appointments = rows
	report.Totals = totals
	return report, nil
}

// SummaryPDF builds the summary and renders it in full before returning.
func (s *Service) SummaryPDF(ctx context.Context, userID uuid.UUID, q model.ReportQuery) (*export.File, error) {
	summary, err := s.Summary(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return s.render(reportSummary, export.FormatPDF, s.renderer.SummaryFilename(summary.Year),
		func(w io.Writer) error { return s.renderer.SummaryPDF(w, summary) })
}

// DetailedFile renders the detailed report as pdf, csv or xlsx. The report is
// returned too so callers can expose its totals.
func (s *Service) DetailedFile(ctx context.Context, userID uuid.UUID, q model.ReportQuery, format string) (*export.File, *model.DetailedReport, error) {
	var draw func(io.Writer, *model.DetailedReport) error
	switch format {
	case export.FormatPDF:
		draw = s.renderer.DetailedPDF
	case export.FormatCSV:
		draw = s.renderer.DetailedCSV
	case export.FormatXLSX:
		draw = s.renderer.DetailedXLSX
	default:
		return nil, nil, apperrors.Validation(fmt.Sprintf("Unsupported format %q", format))
	}

	report, err := s.Detailed(ctx, userID, q)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.render(reportDetailed, format, s.renderer.DetailedFilename(report, format),
		func(w io.Writer) error { return draw(w, report) })
	if err != nil {
		return nil, nil, err
	}
	return file, report, nil
}

// EmailSummary mails the summary PDF for the year to the given address.
func (s *Service) EmailSummary(ctx context.Context, userID uuid.UUID, q model.ReportQuery, to string) error {
	if s.email == nil {
		return apperrors.Unavailable("Email delivery is not configured", nil)
	}

	file, err := s.SummaryPDF(ctx, userID, q)
	if err != nil {
		return err
	}

	if err := s.email.SendSummaryReport(ctx, to, q.Year, file.Name, file.Data); err != nil {
		s.observeEmail("failed")
		log.Error().Err(err).Str("user_id", userID.String()).Int("year", q.Year).Msg("failed to email summary report")
		return apperrors.Unavailable("Failed to send email", err)
	}

	s.observeEmail("sent")
	log.Info().Str("user_id", userID.String()).Int("year", q.Year).Msg("summary report emailed")
	return nil
}

func (s *Service) render(report, format, name string, draw func(io.Writer) error) (*export.File, error) {
	var buf bytes.Buffer
	err := draw(&buf)
	s.metrics.ObserveRender(report, format, err)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate report", err)
	}
	return &export.File{
		Name:        name,
		ContentType: export.ContentType(format),
		Data:        buf.Bytes(),
	}, nil
}

func (s *Service) client(ctx context.Context, userID, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.Get(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Client")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *Service) observeEmail(status string) {
	if s.metrics != nil {
		s.metrics.ReportsEmailed.WithLabelValues(status).Inc()
	}
}
