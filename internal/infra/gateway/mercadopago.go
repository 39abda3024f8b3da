package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
)

const mercadoPagoApproved = "approved"

// MercadoPago creates checkout preferences. The session id confirmed later is the
// payment id Mercado Pago appends to the return URL.
type MercadoPago struct {
	preferences preference.Client
	payments    mppayment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    mppayment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) Name() payment.Method {
	return payment.MethodMercadoPago
}

func (m *MercadoPago) CreateCheckout(
	ctx context.Context,
	req payment.CheckoutRequest,
) (*payment.CheckoutSession, error) {

	metadata := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	pref := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  payment.RoundCents(req.Amount),
				CurrencyID: strings.ToUpper(req.Currency),
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Pending: req.SuccessURL,
			Failure: req.CancelURL,
		},
		ExternalReference: req.Reference,
		Metadata:          metadata,
	}
	if req.PayerEmail != "" {
		pref.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	res, err := m.preferences.Create(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preference: %w", err)
	}

	return &payment.CheckoutSession{ID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) FetchSession(
	ctx context.Context,
	sessionID string,
) (*payment.GatewaySession, error) {

	id, err := strconv.Atoi(sessionID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago payment id %q: %w", sessionID, err)
	}

	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment: %w", err)
	}

	return &payment.GatewaySession{
		ID:       sessionID,
		Paid:     res.Status == mercadoPagoApproved,
		Amount:   res.TransactionAmount,
		Metadata: stringMetadata(res.Metadata),
	}, nil
}

// stringMetadata flattens metadata values, which come back as JSON numbers or strings.
func stringMetadata(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// Compile-time check
var _ payment.Gateway = (*MercadoPago)(nil)
