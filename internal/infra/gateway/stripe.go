package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
)

type Stripe struct {
	sessions      *session.Client
	webhookSecret string
}

func NewStripe(secretKey, webhookSecret string) *Stripe {
	return &Stripe{
		sessions: &session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		webhookSecret: webhookSecret,
	}
}

func (s *Stripe) Name() payment.Method {
	return payment.MethodStripe
}

func (s *Stripe) CreateCheckout(
	ctx context.Context,
	req payment.CheckoutRequest,
) (*payment.CheckoutSession, error) {

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Title),
					},
					UnitAmount: stripe.Int64(payment.ToCents(req.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.PayerEmail != "" {
		params.CustomerEmail = stripe.String(req.PayerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	cs, err := s.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}

	return &payment.CheckoutSession{ID: cs.ID, URL: cs.URL}, nil
}

func (s *Stripe) FetchSession(
	ctx context.Context,
	sessionID string,
) (*payment.GatewaySession, error) {

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := s.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get session: %w", err)
	}

	return toGatewaySession(cs), nil
}

// ParseWebhook verifies the signature and returns the completed checkout it carries.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (*payment.GatewaySession, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("stripe webhook: %w", err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil, payment.ErrIgnoredEvent
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("stripe webhook payload: %w", err)
	}

	return toGatewaySession(&cs), nil
}

func toGatewaySession(cs *stripe.CheckoutSession) *payment.GatewaySession {
	return &payment.GatewaySession{
		ID:       cs.ID,
		Paid:     cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Amount:   float64(cs.AmountTotal) / 100,
		Metadata: cs.Metadata,
	}
}

// Compile-time check
var (
	_ payment.Gateway       = (*Stripe)(nil)
	_ payment.WebhookParser = (*Stripe)(nil)
)
