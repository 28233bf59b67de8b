package model

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"notblank" msg:"Name is required"`
	Email    string `json:"email" binding:"required,email" msg:"Valid email is required"`
	Password string `json:"password" binding:"required,min=8" msg:"Password must be at least 8 characters"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" msg:"Valid email is required"`
	Password string `json:"password" binding:"required" msg:"Password is required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
