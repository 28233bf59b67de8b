package model

import "github.com/google/uuid"

type Client struct {
	Base
	UserID uuid.UUID `json:"-" db:"user_id"`
	Name   string    `json:"name" db:"name"`
	Phone  string    `json:"phone" db:"phone"`
	Email  *string   `json:"email" db:"email"`
	Notes  *string   `json:"notes" db:"notes"`
}

// ClientRequest is the body of client create and update.
type ClientRequest struct {
	Name  string `json:"name" binding:"notblank" msg:"Name is required"`
	Phone string `json:"phone" binding:"notblank" msg:"Phone is required"`
	Email string `json:"email" binding:"omitempty,email" msg:"Valid email is required"`
	Notes string `json:"notes"`
}
