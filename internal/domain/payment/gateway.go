package payment

import (
	"context"
	"errors"
)

// ErrIgnoredEvent marks a verified webhook that does not report a completed checkout.
var ErrIgnoredEvent = errors.New("ignored webhook event")

type CheckoutRequest struct {
	Title      string
	Amount     float64
	Currency   string
	PayerEmail string
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
	Reference  string
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"checkout_url"`
}

// GatewaySession is the gateway's view of a finished (or unfinished) checkout.
type GatewaySession struct {
	ID       string
	Paid     bool
	Amount   float64
	Metadata map[string]string
}

type Gateway interface {
	Name() Method

	CreateCheckout(
		ctx context.Context,
		req CheckoutRequest,
	) (*CheckoutSession, error)

	FetchSession(
		ctx context.Context,
		sessionID string,
	) (*GatewaySession, error)
}

// Metadata keys carried through the gateway round trip.
const (
	MetaAppointmentID = "appointment_id"
	MetaServiceID     = "service_id"
	MetaPayerID       = "payer_id"
)

// WebhookParser verifies a gateway callback and extracts the session it reports.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*GatewaySession, error)
}
