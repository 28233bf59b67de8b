package repository

import "errors"

var (
	// ErrNotFound covers both missing rows and rows owned by another user.
	ErrNotFound = errors.New("record not found")
	// ErrClientNotFound is returned by appointment writes whose client_id
	// does not name a client of the same user.
	ErrClientNotFound = errors.New("client not found")
	ErrDuplicate      = errors.New("record already exists")
	// ErrInvalidValue is a value the schema rejects for its size: text too
	// long for its column or a number out of range.
	ErrInvalidValue = errors.New("value out of range for column")
)
