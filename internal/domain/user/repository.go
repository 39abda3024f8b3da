package user

import (
	"context"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type ListFilter struct {
	Roles []string
}

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	Create(
		ctx context.Context,
		u *models.User,
	) error

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// GetByEmail returns nil, nil when the email is unknown.
	GetByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	Update(
		ctx context.Context,
		u *models.User,
	) error

	// DeleteAppointmentsOf removes every appointment where the user is client or barber.
	DeleteAppointmentsOf(
		ctx context.Context,
		userID uint,
	) (int64, error)

	Delete(
		ctx context.Context,
		id uint,
	) error

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.User, error)

	LogAudit(
		ctx context.Context,
		entry *models.AuditLog,
	) error
}
