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

type SalesSummary struct {
	Date     string           `json:"date"`
	Count    int              `json:"count"`
	Total    float64          `json:"total"`
	Payments []models.Payment `json:"payments"`
}

type SalesTotal struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewSalesTotal(
	repo domain.Repository,
	loc *time.Location,
) *SalesTotal {
	return &SalesTotal{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// Execute sums paid payments inside one shop-local day. An empty day
// reports zero and an empty list.
func (uc *SalesTotal) Execute(
	ctx context.Context,
	caller policy.Caller,
	rawDay string,
) (*SalesSummary, error) {

	if !policy.CanViewSales(caller) {
		return nil, errSalesForbidden
	}

	day := uc.now().In(uc.loc)
	if raw := strings.TrimSpace(rawDay); raw != "" {
		parsed, err := timezone.ParseDay(raw, uc.loc)
		if err != nil {
			return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD.")
		}
		day = parsed
	}

	start, end := timezone.DayWindow(day)
	paid := domain.StatusPaid

	payments, err := uc.repo.ListPayments(ctx, domain.ListFilter{
		Status: &paid,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		return nil, httperr.FromDB(err, "payments_not_found")
	}

	var cents int64
	for _, p := range payments {
		cents += domain.ToCents(p.Amount)
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	return &SalesSummary{
		Date:     start.Format(timezone.DayLayout),
		Count:    len(payments),
		Total:    float64(cents) / 100,
		Payments: payments,
	}, nil
}
