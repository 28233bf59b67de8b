package appointment

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
	"github.com/skous2/nails-by-brooke/internal/repository/mocks"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
)

func moneyPtr(s string) *model.Money {
	m := model.MustMoney(s)
	return &m
}

func boolPtr(b bool) *bool { return &b }

func validRequest(clientID uuid.UUID) *model.AppointmentRequest {
	return &model.AppointmentRequest{
		ClientID:        clientID.String(),
		AppointmentDate: "2025-03-15",
		Service:         "Full Set",
		Price:           moneyPtr("60"),
	}
}

func TestCreateDefaultsTipAndPaid(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)
	userID, clientID := uuid.New(), uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Appointment) bool {
		return a.UserID == userID &&
			a.ClientID == clientID &&
			a.AppointmentDate.Equal(model.NewDate(2025, 3, 15).Time) &&
			a.Tip.Equal(model.ZeroMoney) &&
			!a.Paid &&
			a.Notes == nil
	})).Return(nil)

	appt, err := svc.Create(context.Background(), userID, validRequest(clientID))
	require.NoError(t, err)
	assert.Equal(t, "0.00", appt.Tip.String())
	assert.Equal(t, "60.00", appt.Total().String())
	repo.AssertExpectations(t)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.AppointmentRequest)
		detail string
	}{
		{"bad client id", func(r *model.AppointmentRequest) { r.ClientID = "nope" }, "Valid client ID is required"},
		{"bad date", func(r *model.AppointmentRequest) { r.AppointmentDate = "2025-02-30" }, "Valid date is required"},
		{"blank service", func(r *model.AppointmentRequest) { r.Service = "  " }, "Service is required"},
		{"missing price", func(r *model.AppointmentRequest) { r.Price = nil }, "Valid price is required"},
		{"negative price", func(r *model.AppointmentRequest) { r.Price = moneyPtr("-1") }, "Valid price is required"},
		{"negative tip", func(r *model.AppointmentRequest) { r.Tip = moneyPtr("-0.01") }, "Tip must be zero or greater"},
		{"price too large", func(r *model.AppointmentRequest) { r.Price = moneyPtr("123456789012.34") }, "Price must be at most 99999999.99"},
		{"price rounds past limit", func(r *model.AppointmentRequest) { r.Price = moneyPtr("99999999.999") }, "Price must be at most 99999999.99"},
		{"tip too large", func(r *model.AppointmentRequest) { r.Tip = moneyPtr("100000000") }, "Tip must be at most 99999999.99"},
		{"service too long", func(r *model.AppointmentRequest) { r.Service = strings.Repeat("x", 300) }, "Service must be at most 255 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.AppointmentRepository)
			svc := NewService(repo)

			req := validRequest(uuid.New())
			tt.mutate(req)

			_, err := svc.Create(context.Background(), uuid.New(), req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Status())
			assert.Contains(t, appErr.Details, tt.detail)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateForeignClientIsClientNotFound(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrClientNotFound)

	_, err := svc.Create(context.Background(), uuid.New(), validRequest(uuid.New()))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status())
	assert.Equal(t, "Client not found", appErr.Message)
}

func TestCreateAtColumnLimits(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	req := validRequest(uuid.New())
	req.Price = moneyPtr("99999999.99")
	req.Tip = moneyPtr("99999999.99")
	// Multi-byte characters count once each.
	req.Service = strings.Repeat("é", model.MaxServiceLen)

	_, err := svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateRejectedValueIsValidationError(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrInvalidValue)

	_, err := svc.Create(context.Background(), uuid.New(), validRequest(uuid.New()))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status())
}

func TestUpdateMissingAppointment(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)
	id := uuid.New()

	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Appointment) bool { return a.ID == id })).
		Return(repository.ErrNotFound)

	req := validRequest(uuid.New())
	req.Tip = moneyPtr("5")
	req.Paid = boolPtr(true)

	_, err := svc.Update(context.Background(), uuid.New(), id, req)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Appointment not found", appErr.Message)
}

func TestUpdatePaymentIsIdempotent(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)
	userID, id := uuid.New(), uuid.New()

	repo.On("UpdatePayment", mock.Anything, userID, id, true).
		Return(&model.PaymentStatus{ID: id, Paid: true}, nil).Twice()

	first, err := svc.UpdatePayment(context.Background(), userID, id, true)
	require.NoError(t, err)
	second, err := svc.UpdatePayment(context.Background(), userID, id, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestDeleteOtherOwnersAppointment(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListPassesFilter(t *testing.T) {
	repo := new(mocks.AppointmentRepository)
	svc := NewService(repo)
	userID := uuid.New()
	filter := model.AppointmentFilter{Paid: boolPtr(false)}

	repo.On("List", mock.Anything, userID, filter).Return([]*model.Appointment{}, nil)

	list, err := svc.List(context.Background(), userID, filter)
	require.NoError(t, err)
	assert.Empty(t, list)
}
