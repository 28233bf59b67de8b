package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/model"
)

// Every client, appointment, dashboard and report method takes the owning
// user's id and filters by it. A row owned by someone else behaves exactly
// like a missing row.
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	ClientRepository interface {
		List(ctx context.Context, userID uuid.UUID) ([]*model.Client, error)
		Get(ctx context.Context, userID, id uuid.UUID) (*model.Client, error)
		Create(ctx context.Context, client *model.Client) error
		Update(ctx context.Context, client *model.Client) error
		Delete(ctx context.Context, userID, id uuid.UUID) error
	}

	AppointmentRepository interface {
		List(ctx context.Context, userID uuid.UUID, filter model.AppointmentFilter) ([]*model.Appointment, error)
		Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		Update(ctx context.Context, appointment *model.Appointment) error
		UpdatePayment(ctx context.Context, userID, id uuid.UUID, paid bool) (*model.PaymentStatus, error)
		Delete(ctx context.Context, userID, id uuid.UUID) error
	}

	DashboardRepository interface {
		Stats(ctx context.Context, userID uuid.UUID, dates model.DateRange) (*model.DashboardStats, error)
		MonthlyActivity(ctx context.Context, userID uuid.UUID, since model.Date) ([]model.MonthlyActivity, error)
		Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.RecentAppointment, error)
	}

	ReportRepository interface {
		MonthlyTotals(ctx context.Context, userID uuid.UUID, q model.ReportQuery) ([]model.MonthlyTotal, error)
		AnnualTotals(ctx context.Context, userID uuid.UUID, clientID *uuid.UUID) ([]model.AnnualTotal, error)
		PaidAppointments(ctx context.Context, userID uuid.UUID, q model.ReportQuery) ([]model.DetailedRow, error)
	}

	// TokenStore remembers revoked access tokens until they would have
	// expired anyway.
	TokenStore interface {
		Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
		IsRevoked(ctx context.Context, tokenID string) (bool, error)
	}
)
