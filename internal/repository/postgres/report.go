package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/model"
)

// paidInYear is the shared WHERE clause for year-scoped report queries:
// $1 user, $2 first day of the year, $3 first day of the next year.
const paidInYear = `
	WHERE a.user_id = $1
	  AND a.paid = TRUE
	  AND a.appointment_date >= $2
	  AND a.appointment_date < $3
`

func yearBounds(year int) (model.Date, model.Date) {
	return model.NewDate(year, 1, 1), model.NewDate(year+1, 1, 1)
}

func (r *reportRepository) MonthlyTotals(ctx context.Context, userID uuid.UUID, q model.ReportQuery) ([]model.MonthlyTotal, error) {
	from, to := yearBounds(q.Year)
	query := `
		SELECT
			EXTRACT(MONTH FROM a.appointment_date)::int AS month,
			COALESCE(SUM(a.price), 0)::numeric(12,2) AS service_total,
			COALESCE(SUM(a.tip), 0)::numeric(12,2) AS tip_total,
			COALESCE(SUM(a.price + a.tip), 0)::numeric(12,2) AS grand_total
		FROM appointments a
	` + paidInYear
	args := []interface{}{userID, from, to}

	if q.ClientID != nil {
		query += " AND a.client_id = $4"
		args = append(args, *q.ClientID)
	}

	query += " GROUP BY 1 ORDER BY 1 ASC"

	months := []model.MonthlyTotal{}
	if err := r.db.SelectContext(ctx, &months, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}
	return months, nil
}

// AnnualTotals spans the user's whole history regardless of report year.
func (r *reportRepository) AnnualTotals(ctx context.Context, userID uuid.UUID, clientID *uuid.UUID) ([]model.AnnualTotal, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM a.appointment_date)::int AS year,
			COALESCE(SUM(a.price), 0)::numeric(12,2) AS service_total,
			COALESCE(SUM(a.tip), 0)::numeric(12,2) AS tip_total,
			COALESCE(SUM(a.price + a.tip), 0)::numeric(12,2) AS grand_total
		FROM appointments a
		WHERE a.user_id = $1 AND a.paid = TRUE
	`
	args := []interface{}{userID}

	if clientID != nil {
		query += " AND a.client_id = $2"
		args = append(args, *clientID)
	}

	query += " GROUP BY 1 ORDER BY 1 DESC"

	years := []model.AnnualTotal{}
	if err := r.db.SelectContext(ctx, &years, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get annual totals: %w", err)
	}
	return years, nil
}

func (r *reportRepository) PaidAppointments(ctx context.Context, userID uuid.UUID, q model.ReportQuery) ([]model.DetailedRow, error) {
	from, to := yearBounds(q.Year)
	query := `
		SELECT a.id, a.appointment_date, a.client_id, c.name AS client_name,
			   a.service, a.price, a.tip, a.paid, a.notes
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
	` + paidInYear
	args := []interface{}{userID, from, to}

	if q.ClientID != nil {
		query += " AND a.client_id = $4"
		args = append(args, *q.ClientID)
	}

	query += " ORDER BY a.appointment_date ASC, c.name ASC, a.created_at ASC"

	rows := []model.DetailedRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get paid appointments: %w", err)
	}
	return rows, nil
}
