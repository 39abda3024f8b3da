package payment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
	"github.com/BruksfildServices01/barbershop-api/internal/timezone"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

var errSalesForbidden = httperr.Forbidden("forbidden", "Only admins can view payments.")

type ListPaymentsInput struct {
	Status string
	Method string
	Date   string
}

type ListPayments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListPayments(
	repo domain.Repository,
	loc *time.Location,
) *ListPayments {
	return &ListPayments{
		repo: repo,
		loc:  loc,
	}
}

// All lists every payment, optionally narrowed by status, method and day.
func (uc *ListPayments) All(
	ctx context.Context,
	caller policy.Caller,
	in ListPaymentsInput,
) ([]models.Payment, error) {

	if !policy.CanViewSales(caller) {
		return nil, errSalesForbidden
	}

	var filter domain.ListFilter

	if raw := strings.TrimSpace(in.Status); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	if raw := strings.TrimSpace(in.Method); raw != "" {
		method, err := domain.ParseMethod(raw)
		if err != nil {
			return nil, err
		}
		filter.Method = &method
	}

	if raw := strings.TrimSpace(in.Date); raw != "" {
		day, err := timezone.ParseDay(raw, uc.loc)
		if err != nil {
			return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD.")
		}
		start, end := timezone.DayWindow(day)
		filter.From = &start
		filter.To = &end
	}

	return uc.list(ctx, filter)
}

// Recent returns the newest payments; limit is clamped to [1, MaxRecentLimit].
func (uc *ListPayments) Recent(
	ctx context.Context,
	caller policy.Caller,
	limit int,
) ([]models.Payment, error) {

	if !policy.CanViewSales(caller) {
		return nil, errSalesForbidden
	}

	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	return uc.list(ctx, domain.ListFilter{Limit: limit})
}

// Mine lists payments where the caller is the payer.
func (uc *ListPayments) Mine(
	ctx context.Context,
	caller policy.Caller,
) ([]models.Payment, error) {
	payerID := caller.UserID
	return uc.list(ctx, domain.ListFilter{PayerID: &payerID})
}

func (uc *ListPayments) list(ctx context.Context, filter domain.ListFilter) ([]models.Payment, error) {
	payments, err := uc.repo.ListPayments(ctx, filter)
	if err != nil {
		return nil, httperr.FromDB(err, "payments_not_found")
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}
