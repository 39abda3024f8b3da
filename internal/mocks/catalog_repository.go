package mocks

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type CatalogRepository struct {
	Store *Store

	ListCalls int
}

func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{Store: store}
}

func (m *CatalogRepository) List(ctx context.Context) ([]models.Service, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	m.ListCalls++

	out := []models.Service{}
	for _, s := range m.Store.Services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *CatalogRepository) GetByID(ctx context.Context, id uint) (*models.Service, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	s, ok := m.Store.Services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *CatalogRepository) Create(ctx context.Context, s *models.Service) error {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	s.ID = m.Store.id()
	m.Store.Services[s.ID] = *s
	return nil
}

func (m *CatalogRepository) Update(ctx context.Context, s *models.Service) error {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Services[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.Store.Services[s.ID] = *s
	return nil
}

// Delete refuses services still referenced by appointments, like the FK does.
func (m *CatalogRepository) Delete(ctx context.Context, id uint) error {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Services[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, ap := range m.Store.Appointments {
		if ap.ServiceID == id {
			return &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_service"}
		}
	}
	delete(m.Store.Services, id)
	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogCache is an in-memory catalog.Cache.
type CatalogCache struct {
	services []models.Service
	set      bool

	Invalidations int
}

func (c *CatalogCache) GetServices(context.Context) ([]models.Service, bool) {
	return c.services, c.set
}

func (c *CatalogCache) SetServices(_ context.Context, services []models.Service) {
	c.services = services
	c.set = true
}

func (c *CatalogCache) Invalidate(context.Context) {
	c.services = nil
	c.set = false
	c.Invalidations++
}

var _ catalog.Cache = (*CatalogCache)(nil)
