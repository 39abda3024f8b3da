package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(
	repo domain.Repository,
) *ListMyAppointments {
	return &ListMyAppointments{
		repo: repo,
	}
}

// Execute lists the caller's bookings: clients see what they booked,
// barbers and admins see their own chair.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	caller policy.Caller,
) ([]models.Appointment, error) {

	userID := caller.UserID
	var filter domain.ListFilter

	switch caller.Role {
	case policy.RoleClient:
		filter.ClientID = &userID
	case policy.RoleBarber, policy.RoleAdmin:
		filter.BarberID = &userID
	default:
		return nil, httperr.Validation("unsupported_role", "Role cannot list appointments.")
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, httperr.FromDB(err, "appointments_not_found")
	}
	return apps, nil
}
