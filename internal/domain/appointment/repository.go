package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type ListFilter struct {
	ClientID *uint
	BarberID *uint
	Status   *Status
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Lookups --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointment loads the record with client, barber and service.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate locks the row until the transaction ends.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// ListAppointments orders by scheduled_at descending.
	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Audit --------
	LogAudit(
		ctx context.Context,
		entry *models.AuditLog,
	) error
}
