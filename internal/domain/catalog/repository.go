package catalog

import (
	"context"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id uint) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uint) error
}

// Cache is a read-through store for the public service list.
type Cache interface {
	GetServices(ctx context.Context) ([]models.Service, bool)
	SetServices(ctx context.Context, services []models.Service)
	Invalidate(ctx context.Context)
}

// NoopCache is used when no cache backend is configured.
type NoopCache struct{}

func (NoopCache) GetServices(context.Context) ([]models.Service, bool) { return nil, false }

func (NoopCache) SetServices(context.Context, []models.Service) {}

func (NoopCache) Invalidate(context.Context) {}
