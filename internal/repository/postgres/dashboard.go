package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/model"
)

// Stats computes every headline figure in one statement. The date range
// narrows the appointment figures only; the client count is always total.
func (r *dashboardRepository) Stats(ctx context.Context, userID uuid.UUID, dates model.DateRange) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM clients WHERE user_id = $1) AS total_clients,
			COUNT(*) AS total_appointments,
			COALESCE(SUM(price + tip) FILTER (WHERE paid), 0) AS total_earnings,
			COALESCE(SUM(tip) FILTER (WHERE paid), 0) AS total_tips,
			COALESCE(SUM(price + tip) FILTER (WHERE NOT paid), 0) AS pending_payments
		FROM appointments
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	argCount := 2

	if dates.Start != nil {
		query += fmt.Sprintf(" AND appointment_date >= $%d", argCount)
		args = append(args, *dates.Start)
		argCount++
	}

	if dates.End != nil {
		query += fmt.Sprintf(" AND appointment_date <= $%d", argCount)
		args = append(args, *dates.End)
	}

	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepository) MonthlyActivity(ctx context.Context, userID uuid.UUID, since model.Date) ([]model.MonthlyActivity, error) {
	query := `
		SELECT
			TO_CHAR(appointment_date, 'YYYY-MM') AS month,
			COUNT(*) AS count,
			COALESCE(SUM(price + tip), 0) AS revenue
		FROM appointments
		WHERE user_id = $1 AND appointment_date >= $2
		GROUP BY TO_CHAR(appointment_date, 'YYYY-MM')
		ORDER BY month DESC
	`
	months := []model.MonthlyActivity{}
	if err := r.db.SelectContext(ctx, &months, query, userID, since); err != nil {
		return nil, fmt.Errorf("failed to get monthly activity: %w", err)
	}
	return months, nil
}

func (r *dashboardRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.RecentAppointment, error) {
	query := `
		SELECT a.id, c.name AS client_name, a.appointment_date, a.service,
			   a.price, a.tip, a.paid
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC, a.created_at DESC
		LIMIT $2
	`
	recent := []model.RecentAppointment{}
	if err := r.db.SelectContext(ctx, &recent, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent appointments: %w", err)
	}
	return recent, nil
}
