package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skous2/nails-by-brooke/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *model.User {
	return &model.User{
		Base:  model.Base{ID: uuid.New()},
		Name:  "Brooke",
		Email: "brooke@example.com",
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, "nails-by-brooke")
	user := testUser()

	token, issued, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, issued.UserID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, issued.TokenID, claims.TokenID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService(testSecret, time.Hour, "x").GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = NewJWTService("another-secret-another-secret-00", time.Hour, "x").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := &jwtService{
		secret: []byte(testSecret),
		expiry: time.Hour,
		now:    func() time.Time { return time.Now().Add(-2 * time.Hour) },
	}
	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ID:        "id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWTService(testSecret, time.Hour, "x").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTService(testSecret, time.Hour, "x").ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
