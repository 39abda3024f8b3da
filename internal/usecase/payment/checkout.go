package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

var errGatewayDisabled = httperr.Validation("gateway_disabled", "Online payments are not configured.")

type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// Checkout starts hosted gateway sessions and turns completed ones into
// payments through RecordGatewayPayment.
type Checkout struct {
	repo    domain.Repository
	gateway domain.Gateway
	record  *RecordGatewayPayment
	cfg     CheckoutConfig
}

// NewCheckout accepts a nil gateway; every call then fails with gateway_disabled.
func NewCheckout(
	repo domain.Repository,
	gateway domain.Gateway,
	record *RecordGatewayPayment,
	cfg CheckoutConfig,
) *Checkout {
	return &Checkout{
		repo:    repo,
		gateway: gateway,
		record:  record,
		cfg:     cfg,
	}
}

func (uc *Checkout) Enabled() bool {
	return uc.gateway != nil
}

// --------------------------------------------------
// Start
// --------------------------------------------------

func (uc *Checkout) StartAppointmentCheckout(
	ctx context.Context,
	caller policy.Caller,
	appointmentID uint,
) (*domain.CheckoutSession, error) {

	if !uc.Enabled() {
		return nil, errGatewayDisabled
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.FromDB(err, "appointment_not_found")
	}

	if !policy.CanStartCheckout(caller, ap) {
		return nil, httperr.Forbidden("forbidden", "You can only pay for your own appointments.")
	}

	return uc.start(ctx, caller, &ap.Service, ap, ap.Client.Email)
}

func (uc *Checkout) StartDirectCheckout(
	ctx context.Context,
	caller policy.Caller,
	serviceID uint,
) (*domain.CheckoutSession, error) {

	if !uc.Enabled() {
		return nil, errGatewayDisabled
	}

	if !policy.CanStartDirectCheckout(caller) {
		return nil, httperr.Forbidden("clients_only", "Only clients can pay online.")
	}

	if serviceID == 0 {
		return nil, httperr.Validation("missing_fields", "service_id is required.")
	}

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.FromDB(err, "service_not_found")
	}

	return uc.start(ctx, caller, svc, nil, "")
}

func (uc *Checkout) start(
	ctx context.Context,
	caller policy.Caller,
	svc *models.Service,
	ap *models.Appointment,
	payerEmail string,
) (*domain.CheckoutSession, error) {

	meta := map[string]string{
		domain.MetaServiceID: strconv.FormatUint(uint64(svc.ID), 10),
		domain.MetaPayerID:   strconv.FormatUint(uint64(caller.UserID), 10),
	}
	if ap != nil {
		meta[domain.MetaAppointmentID] = strconv.FormatUint(uint64(ap.ID), 10)
	}

	session, err := uc.gateway.CreateCheckout(ctx, domain.CheckoutRequest{
		Title:      svc.Name,
		Amount:     domain.RoundCents(svc.Price),
		Currency:   uc.cfg.Currency,
		PayerEmail: payerEmail,
		Metadata:   meta,
		SuccessURL: uc.cfg.SuccessURL,
		CancelURL:  uc.cfg.CancelURL,
		Reference:  uuid.NewString(),
	})
	if err != nil {
		return nil, httperr.Storage("gateway_error", err)
	}

	return session, nil
}

// --------------------------------------------------
// Confirm
// --------------------------------------------------

// ConfirmCheckout asks the gateway for the session state and records the payment
// once it is paid. Repeated confirmations return the stored payment.
func (uc *Checkout) ConfirmCheckout(
	ctx context.Context,
	sessionID string,
) (*models.Payment, bool, error) {

	if !uc.Enabled() {
		return nil, false, errGatewayDisabled
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, false, httperr.Validation("missing_session_id", "session_id is required.")
	}

	session, err := uc.gateway.FetchSession(ctx, sessionID)
	if err != nil {
		return nil, false, httperr.Validation("invalid_session", "Checkout session could not be verified.")
	}

	return uc.RecordSession(ctx, session)
}

// RecordSession stores a paid gateway session, as reported by a confirm call
// or a verified webhook.
func (uc *Checkout) RecordSession(
	ctx context.Context,
	session *domain.GatewaySession,
) (*models.Payment, bool, error) {

	if !uc.Enabled() {
		return nil, false, errGatewayDisabled
	}
	if !session.Paid {
		return nil, false, httperr.Validation("payment_not_completed", "Checkout session is not paid.")
	}

	in := GatewayPaymentInput{
		ExternalSessionID: session.ID,
		AppointmentID:     metaID(session.Metadata, domain.MetaAppointmentID),
		PayerID:           metaID(session.Metadata, domain.MetaPayerID),
		Amount:            session.Amount,
		Method:            uc.gateway.Name(),
	}

	p, created, err := uc.record.Execute(ctx, in)
	if errors.Is(err, ErrAlreadyRecorded) {
		existing, findErr := uc.repo.FindByExternalSessionID(ctx, session.ID)
		if findErr != nil || existing == nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return p, created, nil
}

func metaID(meta map[string]string, key string) *uint {
	raw, ok := meta[key]
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}
