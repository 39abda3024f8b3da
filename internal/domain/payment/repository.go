package payment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type ListFilter struct {
	PayerID *uint
	Status  *Status
	Method  *Method
	From    *time.Time
	To      *time.Time
	Limit   int
}

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// GetAppointment loads the appointment with its service.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	// FindByExternalSessionID returns nil, nil when no payment carries the key.
	FindByExternalSessionID(
		ctx context.Context,
		sessionID string,
	) (*models.Payment, error)

	// ListPayments orders by paid_at descending.
	ListPayments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Payment, error)

	LogAudit(
		ctx context.Context,
		entry *models.AuditLog,
	) error
}
