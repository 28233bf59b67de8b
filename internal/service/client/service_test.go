package client

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

func TestCreateNormalizesInput(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Client) bool {
		return c.UserID == userID &&
			c.ID != uuid.Nil &&
			c.Name == "Jane Doe" &&
			c.Phone == "555-0100" &&
			c.Email != nil && *c.Email == "janedoe@gmail.com" &&
			c.Notes == nil
	})).Return(nil)

	client, err := svc.Create(context.Background(), userID, &model.ClientRequest{
		Name:  "  Jane Doe ",
		Phone: " 555-0100",
		Email: " Jane.Doe+nails@GMAIL.com ",
		Notes: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", client.Name)
	repo.AssertExpectations(t)
}

func TestCreateValidation(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), &model.ClientRequest{
		Name:  " ",
		Phone: "",
		Email: "not-an-email",
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status())
	assert.ElementsMatch(t, []string{"Name is required", "Phone is required", "Valid email is required"}, appErr.Details)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLengthLimits(t *testing.T) {
	tests := []struct {
		name   string
		req    model.ClientRequest
		detail string
	}{
		{"long name", model.ClientRequest{Name: strings.Repeat("a", 256), Phone: "555"}, "Name must be at most 255 characters"},
		{"long phone", model.ClientRequest{Name: "Jane", Phone: strings.Repeat("5", 60)}, "Phone must be at most 50 characters"},
		{"long email", model.ClientRequest{Name: "Jane", Phone: "555", Email: strings.Repeat("a", 250) + "@example.com"}, "Valid email is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.ClientRepository)
			svc := NewService(repo)

			_, err := svc.Create(context.Background(), uuid.New(), &tt.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Status())
			assert.Equal(t, []string{tt.detail}, appErr.Details)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRejectedValueIsValidationError(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrInvalidValue)

	_, err := svc.Create(context.Background(), uuid.New(), &model.ClientRequest{Name: "Jane", Phone: "555"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status())
}

func TestGetOtherOwnersClientIsNotFound(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)
	owner, id := uuid.New(), uuid.New()

	repo.On("Get", mock.Anything, owner, id).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), owner, id)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status())
	assert.Equal(t, "Client not found", appErr.Message)
}

func TestUpdateMissing(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)

	repo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &model.ClientRequest{Name: "A", Phone: "1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDelete(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)
	owner, id := uuid.New(), uuid.New()

	repo.On("Delete", mock.Anything, owner, id).Return(nil).Once()
	repo.On("Delete", mock.Anything, owner, id).Return(repository.ErrNotFound).Once()

	require.NoError(t, svc.Delete(context.Background(), owner, id))
	assert.True(t, apperrors.IsKind(svc.Delete(context.Background(), owner, id), apperrors.KindNotFound))
}

func TestListWrapsRepositoryError(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := NewService(repo)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.List(context.Background(), uuid.New())
	assert.ErrorIs(t, err, assert.AnError)
	_, isApp := apperrors.As(err)
	assert.False(t, isApp)
}
