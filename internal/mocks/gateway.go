package mocks

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
)

// Gateway is a scripted payment.Gateway.
type Gateway struct {
	Method   payment.Method
	Sessions map[string]*payment.GatewaySession

	LastRequest *payment.CheckoutRequest

	// WebhookSignature is the only signature ParseWebhook accepts.
	WebhookSignature string

	CreateCheckoutFunc func(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
}

func NewGateway(method payment.Method) *Gateway {
	return &Gateway{Method: method, Sessions: map[string]*payment.GatewaySession{}}
}

func (g *Gateway) Name() payment.Method {
	return g.Method
}

func (g *Gateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	g.LastRequest = &req
	if g.CreateCheckoutFunc != nil {
		return g.CreateCheckoutFunc(ctx, req)
	}
	id := "cs_test_" + req.Reference
	g.Sessions[id] = &payment.GatewaySession{ID: id, Amount: req.Amount, Metadata: req.Metadata}
	return &payment.CheckoutSession{ID: id, URL: "https://checkout.test/" + id}, nil
}

func (g *Gateway) FetchSession(ctx context.Context, sessionID string) (*payment.GatewaySession, error) {
	s, ok := g.Sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return s, nil
}

// MarkPaid simulates the customer completing the checkout.
func (g *Gateway) MarkPaid(sessionID string) {
	if s, ok := g.Sessions[sessionID]; ok {
		s.Paid = true
	}
}

// ParseWebhook treats the payload as a session id.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*payment.GatewaySession, error) {
	if signature == "" || signature != g.WebhookSignature {
		return nil, errors.New("bad signature")
	}
	s, ok := g.Sessions[string(payload)]
	if !ok || !s.Paid {
		return nil, payment.ErrIgnoredEvent
	}
	return s, nil
}

var (
	_ payment.Gateway       = (*Gateway)(nil)
	_ payment.WebhookParser = (*Gateway)(nil)
)
