package catalog

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

const DefaultDurationMinutes = 30

var errCatalogForbidden = httperr.Forbidden("forbidden", "Only admins can manage services.")

type ServiceInput struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
}

type Services struct {
	repo  domain.Repository
	cache domain.Cache
}

func NewServices(repo domain.Repository, cache domain.Cache) *Services {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	return &Services{repo: repo, cache: cache}
}

// List is public and served from the cache when warm.
func (uc *Services) List(ctx context.Context) ([]models.Service, error) {
	if services, ok := uc.cache.GetServices(ctx); ok {
		return services, nil
	}

	services, err := uc.repo.List(ctx)
	if err != nil {
		return nil, httperr.FromDB(err, "service_not_found")
	}
	if services == nil {
		services = []models.Service{}
	}

	uc.cache.SetServices(ctx, services)
	return services, nil
}

func (uc *Services) Get(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.FromDB(err, "service_not_found")
	}
	return svc, nil
}

func (uc *Services) Create(
	ctx context.Context,
	caller policy.Caller,
	in ServiceInput,
) (*models.Service, error) {

	if !policy.CanManageCatalog(caller) {
		return nil, errCatalogForbidden
	}
	if in.Name == nil || in.Price == nil {
		return nil, httperr.Validation("missing_fields", "name and price are required.")
	}

	svc := &models.Service{DurationMinutes: DefaultDurationMinutes}
	if err := apply(svc, in); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, svc); err != nil {
		return nil, httperr.FromDB(err, "service_not_found")
	}

	uc.cache.Invalidate(ctx)
	return svc, nil
}

func (uc *Services) Update(
	ctx context.Context,
	caller policy.Caller,
	id uint,
	in ServiceInput,
) (*models.Service, error) {

	if !policy.CanManageCatalog(caller) {
		return nil, errCatalogForbidden
	}

	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.FromDB(err, "service_not_found")
	}

	if err := apply(svc, in); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, httperr.FromDB(err, "service_not_found")
	}

	uc.cache.Invalidate(ctx)
	return svc, nil
}

// Delete fails with in_use while appointments still reference the service.
func (uc *Services) Delete(
	ctx context.Context,
	caller policy.Caller,
	id uint,
) error {

	if !policy.CanManageCatalog(caller) {
		return errCatalogForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return httperr.FromDB(err, "service_not_found")
	}

	uc.cache.Invalidate(ctx)
	return nil
}

func apply(svc *models.Service, in ServiceInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return httperr.Validation("invalid_name", "name cannot be empty.")
		}
		svc.Name = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return httperr.Validation("invalid_price", "price must not be negative.")
		}
		svc.Price = payment.RoundCents(*in.Price)
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return httperr.Validation("invalid_duration", "duration_minutes must be positive.")
		}
		svc.DurationMinutes = *in.DurationMinutes
	}
	return nil
}
