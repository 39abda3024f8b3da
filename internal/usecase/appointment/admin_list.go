package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
	"github.com/BruksfildServices01/barbershop-api/internal/timezone"
)

type AdminListInput struct {
	Status string
	Date   string
}

type ListAllAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAllAppointments(
	repo domain.Repository,
	loc *time.Location,
) *ListAllAppointments {
	return &ListAllAppointments{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAllAppointments) Execute(
	ctx context.Context,
	caller policy.Caller,
	in AdminListInput,
) ([]models.Appointment, error) {

	if !policy.CanListAllAppointments(caller) {
		return nil, errForbidden
	}

	var filter domain.ListFilter

	if raw := strings.TrimSpace(in.Status); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
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

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, httperr.FromDB(err, "appointments_not_found")
	}
	return apps, nil
}
