package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
	"github.com/skous2/nails-by-brooke/pkg/auth"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
	"github.com/skous2/nails-by-brooke/pkg/metrics"
	"github.com/skous2/nails-by-brooke/pkg/security"
	"github.com/skous2/nails-by-brooke/pkg/validator"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

var errInvalidCredentials = apperrors.Unauthorized("Invalid email or password")

type Service struct {
	userRepo repository.UserRepository
	tokens   repository.TokenStore
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	failures *cache.Cache
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, tokens repository.TokenStore,
	jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		failures: cache.New(lockoutDuration, 2*lockoutDuration),
		now:      time.Now,
	}
}

// WithMetrics counts failed logins on m.
func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.metrics = m
	return s
}

// Register creates the account and signs the user straight in.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}
	if utf8.RuneCountInString(name) > model.MaxNameLen {
		return nil, apperrors.Validation(fmt.Sprintf("Name must be at most %d characters", model.MaxNameLen))
	}
	email := validator.NormalizeEmail(req.Email)
	if utf8.RuneCountInString(email) > model.MaxEmailLen {
		return nil, apperrors.Validation("Valid email is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, security.ErrPasswordTooShort) {
		return nil, apperrors.Validation("Password must be at least 8 characters")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		if errors.Is(err, repository.ErrInvalidValue) {
			return nil, apperrors.Validation("A value is too long or too large")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return s.issue(user)
}

// Login checks credentials. After maxLoginAttempts failures for an address
// further attempts are refused until the lockout window passes.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := validator.NormalizeEmail(req.Email)

	if n, ok := s.failures.Get(email); ok && n.(int) >= maxLoginAttempts {
		return nil, apperrors.TooManyRequests("Too many failed login attempts, try again later")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.recordFailure(email)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.recordFailure(email)
		if !errors.Is(err, security.ErrPasswordMismatch) {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("stored password hash is unusable")
		}
		return nil, errInvalidCredentials
	}

	s.failures.Delete(email)
	return s.issue(user)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, claims *model.TokenClaims) error {
	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.tokens.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Authenticate verifies a bearer token and that it has not been revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("Token has been revoked")
	}
	return claims, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("User no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *Service) issue(user *model.User) (*model.AuthResponse, error) {
	token, claims, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.AuthResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

func (s *Service) recordFailure(email string) {
	s.metrics.ObserveLoginFailure()
	if err := s.failures.Increment(email, 1); err != nil {
		s.failures.Set(email, 1, cache.DefaultExpiration)
	}
}
