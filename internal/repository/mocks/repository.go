// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
)

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.ClientRepository      = (*ClientRepository)(nil)
	_ repository.AppointmentRepository = (*AppointmentRepository)(nil)
	_ repository.DashboardRepository   = (*DashboardRepository)(nil)
	_ repository.ReportRepository      = (*ReportRepository)(nil)
	_ repository.TokenStore            = (*TokenStore)(nil)
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) List(ctx context.Context, userID uuid.UUID) ([]*model.Client, error) {
	args := m.Called(ctx, userID)
	if c, ok := args.Get(0).([]*model.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Get(ctx context.Context, userID, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, userID, id)
	if c, ok := args.Get(0).(*model.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) List(ctx context.Context, userID uuid.UUID, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	args := m.Called(ctx, userID, filter)
	if a, ok := args.Get(0).([]*model.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, userID, id)
	if a, ok := args.Get(0).(*model.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *AppointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *AppointmentRepository) UpdatePayment(ctx context.Context, userID, id uuid.UUID, paid bool) (*model.PaymentStatus, error) {
	args := m.Called(ctx, userID, id, paid)
	if s, ok := args.Get(0).(*model.PaymentStatus); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) Stats(ctx context.Context, userID uuid.UUID, dates model.DateRange) (*model.DashboardStats, error) {
	args := m.Called(ctx, userID, dates)
	if s, ok := args.Get(0).(*model.DashboardStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardRepository) MonthlyActivity(ctx context.Context, userID uuid.UUID, since model.Date) ([]model.MonthlyActivity, error) {
	args := m.Called(ctx, userID, since)
	if a, ok := args.Get(0).([]model.MonthlyActivity); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.RecentAppointment, error) {
	args := m.Called(ctx, userID, limit)
	if r, ok := args.Get(0).([]model.RecentAppointment); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) MonthlyTotals(ctx context.Context, userID uuid.UUID, q model.ReportQuery) ([]model.MonthlyTotal, error) {
	args := m.Called(ctx, userID, q)
	if t, ok := args.Get(0).([]model.MonthlyTotal); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) AnnualTotals(ctx context.Context, userID uuid.UUID, clientID *uuid.UUID) ([]model.AnnualTotal, error) {
	args := m.Called(ctx, userID, clientID)
	if t, ok := args.Get(0).([]model.AnnualTotal); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) PaidAppointments(ctx context.Context, userID uuid.UUID, q model.ReportQuery) ([]model.DetailedRow, error) {
	args := m.Called(ctx, userID, q)
	if r, ok := args.Get(0).([]model.DetailedRow); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type TokenStore struct {
	mock.Mock
}

func (m *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
