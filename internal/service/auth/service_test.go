package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
	"github.com/skous2/nails-by-brooke/internal/repository/memory"
	"github.com/skous2/nails-by-brooke/internal/repository/mocks"
	"github.com/skous2/nails-by-brooke/pkg/auth"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
	"github.com/skous2/nails-by-brooke/pkg/security"
)

const testSecret = "test-secret-that-is-at-least-32-bytes"

type fixture struct {
	svc    *Service
	users  *mocks.UserRepository
	hasher *security.Bcrypt
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := new(mocks.UserRepository)
	hasher := security.NewBcrypt(bcrypt.MinCost)
	svc := NewService(users, memory.NewTokenStore(time.Minute),
		auth.NewJWTService(testSecret, time.Hour, "nails-by-brooke"), hasher)
	return &fixture{svc: svc, users: users, hasher: hasher}
}

func (f *fixture) storedUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	return &model.User{Base: model.Base{ID: uuid.New()}, Name: "Brooke", Email: email, PasswordHash: hash}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "brooke@example.com" && u.Name == "Brooke" && u.PasswordHash != "secret123"
	})).Return(nil)

	resp, err := f.svc.Register(context.Background(), &model.RegisterRequest{
		Name:     " Brooke ",
		Email:    "Brooke@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "brooke@example.com", resp.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := f.svc.Register(context.Background(), &model.RegisterRequest{
		Name: "Brooke", Email: "brooke@example.com", Password: "secret123",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status())
	assert.Equal(t, "Email already registered", appErr.Message)
}

func TestRegisterShortPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), &model.RegisterRequest{
		Name: "Brooke", Email: "brooke@example.com", Password: "short",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterLongName(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), &model.RegisterRequest{
		Name: strings.Repeat("B", 256), Email: "brooke@example.com", Password: "secret123",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status())
	assert.Equal(t, []string{"Name must be at most 255 characters"}, appErr.Details)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.storedUser(t, "brooke@example.com", "secret123")
	f.users.On("GetByEmail", mock.Anything, "brooke@example.com").Return(user, nil)

	resp, err := f.svc.Login(context.Background(), &model.LoginRequest{Email: "BROOKE@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := f.svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	f := newFixture(t)
	user := f.storedUser(t, "brooke@example.com", "secret123")
	f.users.On("GetByEmail", mock.Anything, "brooke@example.com").Return(user, nil)
	f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, wrongPassword := f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "wrong-pass"})
	_, unknown := f.svc.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	assert.Equal(t, wrongPassword.Error(), unknown.Error())
	assert.True(t, apperrors.IsKind(unknown, apperrors.KindUnauthorized))
}

func TestLoginLockout(t *testing.T) {
	f := newFixture(t)
	user := f.storedUser(t, "brooke@example.com", "secret123")
	f.users.On("GetByEmail", mock.Anything, "brooke@example.com").Return(user, nil)

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "wrong-pass"})
		require.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized), "attempt %d", i+1)
	}

	// Even the right password is refused while locked.
	_, err := f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "secret123"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 429, appErr.Status())
}

func TestLoginSuccessResetsFailures(t *testing.T) {
	f := newFixture(t)
	user := f.storedUser(t, "brooke@example.com", "secret123")
	f.users.On("GetByEmail", mock.Anything, "brooke@example.com").Return(user, nil)

	for i := 0; i < maxLoginAttempts-1; i++ {
		_, _ = f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "wrong-pass"})
	}
	_, err := f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "wrong-pass"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	user := f.storedUser(t, "brooke@example.com", "secret123")
	f.users.On("GetByEmail", mock.Anything, "brooke@example.com").Return(user, nil)

	resp, err := f.svc.Login(context.Background(), &model.LoginRequest{Email: "brooke@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := f.svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(context.Background(), claims))

	_, err = f.svc.Authenticate(context.Background(), resp.Token)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Token has been revoked", appErr.Message)
}

func TestAuthenticateGarbage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Authenticate(context.Background(), "not-a-jwt")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid or expired token", appErr.Message)
}

func TestAuthenticateStoreFailure(t *testing.T) {
	users := new(mocks.UserRepository)
	tokens := new(mocks.TokenStore)
	jwtSvc := auth.NewJWTService(testSecret, time.Hour, "nails-by-brooke")
	svc := NewService(users, tokens, jwtSvc, security.NewBcrypt(bcrypt.MinCost))

	token, _, err := jwtSvc.GenerateAccessToken(&model.User{Base: model.Base{ID: uuid.New()}, Email: "a@example.com"})
	require.NoError(t, err)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, assert.AnError)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMeDeletedUser(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.users.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Me(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}
