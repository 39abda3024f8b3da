package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type UpdateAppointmentStatus struct {
	repo        domain.Repository
	transitions domain.TransitionTable
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	transitions domain.TransitionTable,
) *UpdateAppointmentStatus {
	if transitions == nil {
		transitions = domain.PermissiveTransitions
	}
	return &UpdateAppointmentStatus{
		repo:        repo,
		transitions: transitions,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	caller policy.Caller,
	appointmentID uint,
	rawStatus string,
) (*models.Appointment, error) {

	var updated *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return httperr.FromDB(err, "appointment_not_found")
		}

		to, err := domain.ParseStatus(rawStatus)
		if err != nil {
			return err
		}

		if !policy.CanTransitionAppointment(caller, ap, to) {
			if caller.Role == policy.RoleClient && ap.ClientID == caller.UserID {
				return httperr.Forbidden("client_can_only_cancel", "Clients can only cancel their appointments.")
			}
			return errForbidden
		}

		from := ap.Status
		if err := domain.SetStatus(ap, to, uc.transitions); err != nil {
			return err
		}

		if err := tx.UpdateAppointmentStatus(ctx, ap); err != nil {
			return httperr.FromDB(err, "appointment_not_found")
		}

		if err := audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "appointment_status_changed",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]string{"from": from, "to": ap.Status},
		}); err != nil {
			return httperr.Storage("audit_failed", err)
		}

		updated, err = tx.GetAppointment(ctx, ap.ID)
		return httperr.FromDB(err, "appointment_not_found")
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
