package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
	"github.com/BruksfildServices01/barbershop-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID    uint    `json:"barber_id"`
	ServiceID   uint    `json:"service_id"`
	ScheduledAt string  `json:"scheduled_at"`
	Notes       *string `json:"notes"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo domain.Repository
	loc  *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo: repo,
		loc:  loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	caller policy.Caller,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if !policy.CanCreateAppointment(caller) {
		return nil, httperr.Forbidden("clients_only", "Only clients can book appointments.")
	}

	if in.BarberID == 0 || in.ServiceID == 0 || strings.TrimSpace(in.ScheduledAt) == "" {
		return nil, httperr.Validation("missing_fields", "barber_id, service_id and scheduled_at are required.")
	}

	var created *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Barber
		// --------------------------------------------------
		barber, err := tx.GetUser(ctx, in.BarberID)
		if err != nil {
			return lookupErr(err, httperr.Validation("invalid_barber", "Barber does not exist."))
		}
		if !policy.Role(barber.Role).CanBeBooked() {
			return httperr.Validation("invalid_barber", "Selected user is not a barber.")
		}

		// --------------------------------------------------
		// Service
		// --------------------------------------------------
		if _, err := tx.GetService(ctx, in.ServiceID); err != nil {
			return lookupErr(err, httperr.Validation("invalid_service", "Service does not exist."))
		}

		// --------------------------------------------------
		// Date / time in the shop timezone
		// --------------------------------------------------
		scheduledAt, err := timezone.ParseDateTime(strings.TrimSpace(in.ScheduledAt), uc.loc)
		if err != nil {
			return httperr.Validation("invalid_scheduled_at", "scheduled_at must be an ISO 8601 date-time.")
		}

		ap := &models.Appointment{
			ClientID:    caller.UserID,
			BarberID:    barber.ID,
			ServiceID:   in.ServiceID,
			ScheduledAt: scheduledAt,
			Status:      string(domain.InitialStatus()),
			Notes:       in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return httperr.FromDB(err, "appointment_not_found")
		}

		if err := audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "appointment_created",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{
				"barber_id":    ap.BarberID,
				"service_id":   ap.ServiceID,
				"scheduled_at": ap.ScheduledAt,
			},
		}); err != nil {
			return httperr.Storage("audit_failed", err)
		}

		created, err = tx.GetAppointment(ctx, ap.ID)
		return httperr.FromDB(err, "appointment_not_found")
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
