package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
)

const clientColumns = `id, user_id, name, phone, email, notes, created_at, updated_at`

func (r *clientRepository) List(ctx context.Context, userID uuid.UUID) ([]*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE user_id = $1
		ORDER BY name ASC, created_at ASC
	`
	clients := []*model.Client{}
	if err := r.db.SelectContext(ctx, &clients, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) Get(ctx context.Context, userID, id uuid.UUID) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND user_id = $2`

	var client model.Client
	if err := r.db.GetContext(ctx, &client, query, id, userID); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (id, user_id, name, phone, email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	now := r.now()
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.UserID,
		client.Name,
		client.Phone,
		client.Email,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if isInvalidValue(err) {
		return repository.ErrInvalidValue
	}
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update rewrites every mutable field of a client the user owns.
func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET name = $1, phone = $2, email = $3, notes = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
		RETURNING created_at
	`
	client.UpdatedAt = r.now()

	err := r.db.GetContext(ctx, &client.CreatedAt, query,
		client.Name,
		client.Phone,
		client.Email,
		client.Notes,
		client.UpdatedAt,
		client.ID,
		client.UserID,
	)
	if isNoRows(err) {
		return repository.ErrNotFound
	}
	if isInvalidValue(err) {
		return repository.ErrInvalidValue
	}
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Delete removes the client. Its appointments go with it through the
// ON DELETE CASCADE foreign key.
func (r *clientRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
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
