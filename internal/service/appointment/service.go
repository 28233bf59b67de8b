package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// List returns the user's appointments matching every set filter, newest
// first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, mapError(err, "get")
	}
	return appointment, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.AppointmentRequest) (*model.Appointment, error) {
	appointment, err := build(req)
	if err != nil {
		return nil, err
	}
	appointment.ID = uuid.New()
	appointment.UserID = userID

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, mapError(err, "create")
	}
	return appointment, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req *model.AppointmentRequest) (*model.Appointment, error) {
	appointment, err := build(req)
	if err != nil {
		return nil, err
	}
	appointment.ID = id
	appointment.UserID = userID

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, mapError(err, "update")
	}
	return appointment, nil
}

// UpdatePayment sets only the paid flag. Setting the current value again is
// not an error.
func (s *Service) UpdatePayment(ctx context.Context, userID, id uuid.UUID, paid bool) (*model.PaymentStatus, error) {
	status, err := s.repo.UpdatePayment(ctx, userID, id, paid)
	if err != nil {
		return nil, mapError(err, "update payment status of")
	}
	return status, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapError(err, "delete")
	}
	return nil
}

// build validates a request and applies defaults: tip 0.00, paid false.
func build(req *model.AppointmentRequest) (*model.Appointment, error) {
	var details []string

	clientID, err := uuid.Parse(strings.TrimSpace(req.ClientID))
	if err != nil {
		details = append(details, "Valid client ID is required")
	}

	date, err := model.ParseDate(strings.TrimSpace(req.AppointmentDate))
	if err != nil {
		details = append(details, "Valid date is required")
	}

	service := strings.TrimSpace(req.Service)
	switch {
	case service == "":
		details = append(details, "Service is required")
	case utf8.RuneCountInString(service) > model.MaxServiceLen:
		details = append(details, fmt.Sprintf("Service must be at most %d characters", model.MaxServiceLen))
	}

	var price model.Money
	switch {
	case req.Price == nil || req.Price.IsNegative():
		details = append(details, "Valid price is required")
	default:
		price = model.NewMoney(req.Price.Decimal)
		if price.Exceeds() {
			details = append(details, "Price must be at most "+model.MaxMoney.String())
		}
	}

	tip := model.ZeroMoney
	if req.Tip != nil {
		tip = model.NewMoney(req.Tip.Decimal)
		switch {
		case tip.IsNegative():
			details = append(details, "Tip must be zero or greater")
		case tip.Exceeds():
			details = append(details, "Tip must be at most "+model.MaxMoney.String())
		}
	}

	if len(details) > 0 {
		return nil, apperrors.Validation(details...)
	}

	paid := false
	if req.Paid != nil {
		paid = *req.Paid
	}

	var notes *string
	if n := strings.TrimSpace(req.Notes); n != "" {
		notes = &n
	}

	return &model.Appointment{
		ClientID:        clientID,
		AppointmentDate: date,
		Service:         service,
		Price:           price,
		Tip:             tip,
		Paid:            paid,
		Notes:           notes,
	}, nil
}

func mapError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("Appointment")
	case errors.Is(err, repository.ErrClientNotFound):
		return apperrors.NotFound("Client")
	case errors.Is(err, repository.ErrInvalidValue):
		return apperrors.Validation("A value is too long or too large")
	default:
		return fmt.Errorf("failed to %s appointment: %w", op, err)
	}
}
