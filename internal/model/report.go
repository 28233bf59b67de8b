package model

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyTotal holds paid sums for one calendar month (1-12).
type MonthlyTotal struct {
	Month        int   `json:"month" db:"month"`
	ServiceTotal Money `json:"service_total" db:"service_total"`
	TipTotal     Money `json:"tip_total" db:"tip_total"`
	GrandTotal   Money `json:"grand_total" db:"grand_total"`
}

// Label renders the month as "Mar 2025".
func (m MonthlyTotal) Label(year int) string {
	return time.Date(year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

type AnnualTotal struct {
	Year         int   `json:"year" db:"year"`
	ServiceTotal Money `json:"service_total" db:"service_total"`
	TipTotal     Money `json:"tip_total" db:"tip_total"`
	GrandTotal   Money `json:"grand_total" db:"grand_total"`
}

type SummaryReport struct {
	Year    int            `json:"year"`
	Monthly []MonthlyTotal `json:"monthly"`
	Annual  []AnnualTotal  `json:"annual"`
}

type DetailedRow struct {
	ID              uuid.UUID `json:"id" db:"id"`
	AppointmentDate Date      `json:"appointment_date" db:"appointment_date"`
	ClientID        uuid.UUID `json:"client_id" db:"client_id"`
	ClientName      string    `json:"client_name" db:"client_name"`
	Service         string    `json:"service" db:"service"`
	Price           Money     `json:"price" db:"price"`
	Tip             Money     `json:"tip" db:"tip"`
	Total           Money     `json:"total" db:"-"`
	Paid            bool      `json:"paid" db:"paid"`
	Notes           *string   `json:"notes" db:"notes"`
}

type ReportTotals struct {
	ServiceTotal Money `json:"service_total"`
	TipTotal     Money `json:"tip_total"`
	GrandTotal   Money `json:"grand_total"`
	Count        int   `json:"count"`
}

type DetailedReport struct {
	Year         int           `json:"year"`
	Appointments []DetailedRow `json:"appointments"`
	Totals       ReportTotals  `json:"totals"`
	ClientID     *uuid.UUID    `json:"client_id,omitempty"`
	ClientName   *string       `json:"client_name,omitempty"`
}

// ReportQuery selects the paid appointments a report covers.
type ReportQuery struct {
	Year     int
	ClientID *uuid.UUID
}

// EmailReportRequest is the body of the summary email route. Both fields are
// optional: the year falls back like the query parameter and the recipient
// defaults to the signed-in user.
type EmailReportRequest struct {
	Year *int   `json:"year" msg:"Year must be a number"`
	To   string `json:"to" binding:"omitempty,email" msg:"Valid email is required"`
}
