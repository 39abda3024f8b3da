package payment

import (
	"math"

	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
)

type Method string

const (
	MethodCash        Method = "cash"
	MethodCard        Method = "card"
	MethodTransfer    Method = "transfer"
	MethodStripe      Method = "stripe"
	MethodMercadoPago Method = "mercadopago"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodStripe, MethodMercadoPago:
		return true
	}
	return false
}

func ParseMethod(raw string) (Method, error) {
	m := Method(raw)
	if !m.Valid() {
		return "", httperr.Validation("invalid_method", "Method must be one of cash, card, transfer, stripe, mercadopago.")
	}
	return m, nil
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusVoided   Status = "voided"
	StatusRefunded Status = "refunded"
	StatusFailed   Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusVoided, StatusRefunded, StatusFailed:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.Validation("invalid_payment_status", "Status must be one of pending, paid, voided, refunded, failed.")
	}
	return s, nil
}

// RoundCents keeps amounts on the numeric(10,2) grid.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToCents converts an amount to minor units for gateways.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
