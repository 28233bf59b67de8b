package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
)

const appointmentSelect = `
	SELECT a.id, a.user_id, a.client_id, c.name AS client_name,
		   a.appointment_date, a.service, a.price, a.tip, a.paid, a.notes,
		   a.created_at, a.updated_at
	FROM appointments a
	JOIN clients c ON c.id = a.client_id
`

func (r *appointmentRepository) List(ctx context.Context, userID uuid.UUID, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	query := appointmentSelect + ` WHERE a.user_id = $1`
	args := []interface{}{userID}
	argCount := 2

	if filter.Paid != nil {
		query += fmt.Sprintf(" AND a.paid = $%d", argCount)
		args = append(args, *filter.Paid)
		argCount++
	}

	if filter.Dates.Start != nil {
		query += fmt.Sprintf(" AND a.appointment_date >= $%d", argCount)
		args = append(args, *filter.Dates.Start)
		argCount++
	}

	if filter.Dates.End != nil {
		query += fmt.Sprintf(" AND a.appointment_date <= $%d", argCount)
		args = append(args, *filter.Dates.End)
		argCount++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND a.client_id = $%d", argCount)
		args = append(args, *filter.ClientID)
	}

	query += " ORDER BY a.appointment_date DESC, a.created_at DESC"

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = $1 AND a.user_id = $2`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id, userID); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Create checks the client and inserts in one transaction. The client row is
// held FOR SHARE so a concurrent delete cannot slip in between.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, user_id, client_id, appointment_date, service,
			price, tip, paid, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := r.now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		name, err := lockClient(ctx, tx, appointment.UserID, appointment.ClientID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query,
			appointment.ID,
			appointment.UserID,
			appointment.ClientID,
			appointment.AppointmentDate,
			appointment.Service,
			appointment.Price,
			appointment.Tip,
			appointment.Paid,
			appointment.Notes,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		)
		if isForeignKeyViolation(err) {
			return repository.ErrClientNotFound
		}
		if isInvalidValue(err) {
			return repository.ErrInvalidValue
		}
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		appointment.ClientName = name
		return nil
	})
}

// Update replaces every mutable field. A missing appointment is reported
// before a bad client.
func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET client_id = $1, appointment_date = $2, service = $3, price = $4,
			tip = $5, paid = $6, notes = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`
	appointment.UpdatedAt = r.now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var createdAt time.Time
		err := tx.GetContext(ctx, &createdAt,
			`SELECT created_at FROM appointments WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			appointment.ID, appointment.UserID,
		)
		if isNoRows(err) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock appointment: %w", err)
		}

		name, err := lockClient(ctx, tx, appointment.UserID, appointment.ClientID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query,
			appointment.ClientID,
			appointment.AppointmentDate,
			appointment.Service,
			appointment.Price,
			appointment.Tip,
			appointment.Paid,
			appointment.Notes,
			appointment.UpdatedAt,
			appointment.ID,
			appointment.UserID,
		)
		if isForeignKeyViolation(err) {
			return repository.ErrClientNotFound
		}
		if isInvalidValue(err) {
			return repository.ErrInvalidValue
		}
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		appointment.CreatedAt = createdAt
		appointment.ClientName = name
		return nil
	})
}

func (r *appointmentRepository) UpdatePayment(ctx context.Context, userID, id uuid.UUID, paid bool) (*model.PaymentStatus, error) {
	query := `
		UPDATE appointments
		SET paid = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, paid
	`
	var status model.PaymentStatus
	if err := r.db.GetContext(ctx, &status, query, paid, r.now(), id, userID); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return &status, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// lockClient returns the client's name after taking a share lock on it.
func lockClient(ctx context.Context, tx *sqlx.Tx, userID, clientID uuid.UUID) (string, error) {
	var name string
	err := tx.GetContext(ctx, &name,
		`SELECT name FROM clients WHERE id = $1 AND user_id = $2 FOR SHARE`,
		clientID, userID,
	)
	if isNoRows(err) {
		return "", repository.ErrClientNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to check client: %w", err)
	}
	return name, nil
}
