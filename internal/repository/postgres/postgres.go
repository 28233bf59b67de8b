package postgres

import (
	"github.com/skous2/nails-by-brooke/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type clientRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type dashboardRepository struct {
	BaseRepository
}

type reportRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func NewClientRepository(base BaseRepository) repository.ClientRepository {
	return &clientRepository{base}
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func NewDashboardRepository(base BaseRepository) repository.DashboardRepository {
	return &dashboardRepository{base}
}

func NewReportRepository(base BaseRepository) repository.ReportRepository {
	return &reportRepository{base}
}
