package payment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreatePaymentInput struct {
	AppointmentID *uint    `json:"appointment_id"`
	PayerID       *uint    `json:"payer_user_id"`
	Method        string   `json:"method"`
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount"`
	Notes         *string  `json:"notes"`
}

// ======================================================
// USE CASE
// ======================================================

type CreatePayment struct {
	repo domain.Repository
	now  func() time.Time
}

func NewCreatePayment(repo domain.Repository) *CreatePayment {
	return &CreatePayment{
		repo: repo,
		now:  time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePayment) Execute(
	ctx context.Context,
	caller policy.Caller,
	in CreatePaymentInput,
) (*models.Payment, error) {

	var created *models.Payment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Appointment (optional)
		// --------------------------------------------------
		var ap *models.Appointment
		if in.AppointmentID != nil {
			found, err := tx.GetAppointment(ctx, *in.AppointmentID)
			if err != nil {
				return httperr.FromDB(err, "appointment_not_found")
			}
			ap = found
		}

		if !policy.CanRecordPayment(caller, ap) {
			return httperr.Forbidden("forbidden", "You are not allowed to record this payment.")
		}

		// --------------------------------------------------
		// Method / status
		// --------------------------------------------------
		method, err := domain.ParseMethod(strings.TrimSpace(in.Method))
		if err != nil {
			return err
		}

		status := domain.StatusPaid
		if raw := strings.TrimSpace(in.Status); raw != "" {
			if status, err = domain.ParseStatus(raw); err != nil {
				return err
			}
		}

		// --------------------------------------------------
		// Amount
		// --------------------------------------------------
		var amount float64
		switch {
		case in.Amount != nil:
			amount = *in.Amount
		case ap != nil:
			amount = ap.Service.Price
		default:
			return httperr.Validation("amount_required", "amount is required when no appointment is given.")
		}
		if amount < 0 {
			return httperr.Validation("invalid_amount", "amount must not be negative.")
		}

		// --------------------------------------------------
		// Payer
		// --------------------------------------------------
		payerID := in.PayerID
		if payerID == nil && ap != nil {
			clientID := ap.ClientID
			payerID = &clientID
		}

		createdBy := caller.UserID
		p := &models.Payment{
			AppointmentID: in.AppointmentID,
			PayerUserID:   payerID,
			Amount:        domain.RoundCents(amount),
			Method:        string(method),
			Status:        string(status),
			PaidAt:        uc.now(),
			CreatedByID:   &createdBy,
			Notes:         in.Notes,
		}

		if err := tx.CreatePayment(ctx, p); err != nil {
			if httperr.IsForeignKeyViolation(err) {
				return httperr.Validation("invalid_payer", "Payer does not exist.")
			}
			return httperr.FromDB(err, "payment_not_found")
		}

		if err := audit.Record(ctx, tx, audit.Event{
			UserID:   &createdBy,
			Action:   "payment_created",
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]any{
				"amount":         p.Amount,
				"method":         p.Method,
				"status":         p.Status,
				"appointment_id": p.AppointmentID,
			},
		}); err != nil {
			return httperr.Storage("audit_failed", err)
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
