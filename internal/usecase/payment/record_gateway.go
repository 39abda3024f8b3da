package payment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// ErrAlreadyRecorded is returned when a concurrent writer won the insert
// for the same external session.
var ErrAlreadyRecorded = httperr.Conflict("payment_already_recorded", "Payment was already recorded.")

type GatewayPaymentInput struct {
	ExternalSessionID string
	AppointmentID     *uint
	PayerID           *uint
	Amount            float64
	Method            domain.Method
	Notes             *string
}

type RecordGatewayPayment struct {
	repo domain.Repository
	now  func() time.Time
}

func NewRecordGatewayPayment(repo domain.Repository) *RecordGatewayPayment {
	return &RecordGatewayPayment{
		repo: repo,
		now:  time.Now,
	}
}

// Execute stores a gateway-confirmed payment at most once per session id.
// The bool reports whether this call created the row.
func (uc *RecordGatewayPayment) Execute(
	ctx context.Context,
	in GatewayPaymentInput,
) (*models.Payment, bool, error) {

	sessionID := strings.TrimSpace(in.ExternalSessionID)
	if sessionID == "" {
		return nil, false, httperr.Validation("missing_session_id", "session_id is required.")
	}
	if !in.Method.Valid() {
		return nil, false, httperr.Validation("invalid_method", "Unknown payment method.")
	}
	if in.Amount < 0 {
		return nil, false, httperr.Validation("invalid_amount", "amount must not be negative.")
	}

	existing, err := uc.repo.FindByExternalSessionID(ctx, sessionID)
	if err != nil {
		return nil, false, httperr.FromDB(err, "payment_not_found")
	}
	if existing != nil {
		return existing, false, nil
	}

	p := &models.Payment{
		AppointmentID:     in.AppointmentID,
		PayerUserID:       in.PayerID,
		Amount:            domain.RoundCents(in.Amount),
		Method:            string(in.Method),
		Status:            string(domain.StatusPaid),
		PaidAt:            uc.now(),
		Notes:             in.Notes,
		ExternalSessionID: &sessionID,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.CreatePayment(ctx, p); err != nil {
			if httperr.IsUniqueViolation(err) {
				return ErrAlreadyRecorded
			}
			return httperr.FromDB(err, "payment_not_found")
		}

		return audit.Record(ctx, tx, audit.Event{
			UserID:   in.PayerID,
			Action:   "payment_recorded_gateway",
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]any{
				"session_id": sessionID,
				"method":     p.Method,
				"amount":     p.Amount,
			},
		})
	})
	if err != nil {
		return nil, false, err
	}

	return p, true, nil
}
