package model

import "github.com/google/uuid"

type DashboardStats struct {
	TotalClients        int               `json:"total_clients" db:"total_clients"`
	TotalAppointments   int               `json:"total_appointments" db:"total_appointments"`
	TotalEarnings       Money             `json:"total_earnings" db:"total_earnings"`
	TotalTips           Money             `json:"total_tips" db:"total_tips"`
	PendingPayments     Money             `json:"pending_payments" db:"pending_payments"`
	AppointmentsByMonth []MonthlyActivity `json:"appointments_by_month" db:"-"`
}

// MonthlyActivity is one bucket of the recent-months series. Month is YYYY-MM.
type MonthlyActivity struct {
	Month   string `json:"month" db:"month"`
	Count   int    `json:"count" db:"count"`
	Revenue Money  `json:"revenue" db:"revenue"`
}

type RecentAppointment struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ClientName      string    `json:"client_name" db:"client_name"`
	AppointmentDate Date      `json:"appointment_date" db:"appointment_date"`
	Service         string    `json:"service" db:"service"`
	Price           Money     `json:"price" db:"price"`
	Tip             Money     `json:"tip" db:"tip"`
	Paid            bool      `json:"paid" db:"paid"`
}
