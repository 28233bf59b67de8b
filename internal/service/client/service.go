package client

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
	"github.com/skous2/nails-by-brooke/pkg/validator"
)

type Service struct {
	repo repository.ClientRepository
}

func NewService(repo repository.ClientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, mapError(err, "get")
	}
	return client, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.ClientRequest) (*model.Client, error) {
	client, err := build(req)
	if err != nil {
		return nil, err
	}
	client.ID = uuid.New()
	client.UserID = userID

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, mapError(err, "create")
	}
	return client, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req *model.ClientRequest) (*model.Client, error) {
	client, err := build(req)
	if err != nil {
		return nil, err
	}
	client.ID = id
	client.UserID = userID

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, mapError(err, "update")
	}
	return client, nil
}

// Delete removes the client together with all of its appointments.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapError(err, "delete")
	}
	return nil
}

// build validates the request and produces the stored form: trimmed text,
// normalized email, empty optionals as NULL.
func build(req *model.ClientRequest) (*model.Client, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	var details []string
	switch {
	case name == "":
		details = append(details, "Name is required")
	case utf8.RuneCountInString(name) > model.MaxNameLen:
		details = append(details, fmt.Sprintf("Name must be at most %d characters", model.MaxNameLen))
	}
	switch {
	case phone == "":
		details = append(details, "Phone is required")
	case utf8.RuneCountInString(phone) > model.MaxPhoneLen:
		details = append(details, fmt.Sprintf("Phone must be at most %d characters", model.MaxPhoneLen))
	}

	var email *string
	if e := strings.TrimSpace(req.Email); e != "" {
		if !strings.Contains(e, "@") || utf8.RuneCountInString(e) > model.MaxEmailLen {
			details = append(details, "Valid email is required")
		} else {
			normalized := validator.NormalizeEmail(e)
			email = &normalized
		}
	}

	if len(details) > 0 {
		return nil, apperrors.Validation(details...)
	}

	return &model.Client{
		Name:  name,
		Phone: phone,
		Email: email,
		Notes: optional(req.Notes),
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func mapError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Client")
	}
	if errors.Is(err, repository.ErrInvalidValue) {
		return apperrors.Validation("A value is too long or too large")
	}
	return fmt.Errorf("failed to %s client: %w", op, err)
}
