package model

import (
	"github.com/google/uuid"
)

type Appointment struct {
	Base
	UserID          uuid.UUID `json:"-" db:"user_id"`
	ClientID        uuid.UUID `json:"client_id" db:"client_id"`
	ClientName      string    `json:"client_name" db:"client_name"`
	AppointmentDate Date      `json:"appointment_date" db:"appointment_date"`
	Service         string    `json:"service" db:"service"`
	Price           Money     `json:"price" db:"price"`
	Tip             Money     `json:"tip" db:"tip"`
	Paid            bool      `json:"paid" db:"paid"`
	Notes           *string   `json:"notes" db:"notes"`
}

// Total is price plus tip. It is never stored.
func (a *Appointment) Total() Money {
	return a.Price.Plus(a.Tip)
}

// AppointmentRequest is the body of appointment create and update.
type AppointmentRequest struct {
	ClientID        string `json:"client_id" binding:"required,uuid" msg:"Valid client ID is required"`
	AppointmentDate string `json:"appointment_date" binding:"required,isodate" msg:"Valid date is required"`
	Service         string `json:"service" binding:"notblank" msg:"Service is required"`
	Price           *Money `json:"price" binding:"required" msg:"Valid price is required"`
	Tip             *Money `json:"tip" msg:"Tip must be zero or greater"`
	Paid            *bool  `json:"paid" msg:"Paid status must be true or false"`
	Notes           string `json:"notes"`
}

type PaymentRequest struct {
	Paid *bool `json:"paid" binding:"required" msg:"Paid status must be true or false"`
}

// PaymentStatus is the narrow result of a payment update.
type PaymentStatus struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Paid bool      `json:"paid" db:"paid"`
}

// AppointmentFilter narrows an appointment listing. Nil fields do not filter.
type AppointmentFilter struct {
	Paid     *bool
	Dates    DateRange
	ClientID *uuid.UUID
}
