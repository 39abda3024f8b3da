package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
)

type DeleteAppointment struct {
	repo domain.Repository
}

func NewDeleteAppointment(repo domain.Repository) *DeleteAppointment {
	return &DeleteAppointment{repo: repo}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	caller policy.Caller,
	appointmentID uint,
) error {

	if !policy.CanDeleteAppointment(caller) {
		return errForbidden
	}

	return uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.FromDB(err, "appointment_not_found")
		}

		if err := tx.DeleteAppointment(ctx, ap.ID); err != nil {
			return httperr.FromDB(err, "appointment_not_found")
		}

		return audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "appointment_deleted",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{
				"client_id": ap.ClientID,
				"barber_id": ap.BarberID,
				"status":    ap.Status,
			},
		})
	})
}
