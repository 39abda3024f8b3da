package mocks

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type UserRepository struct {
	Store *Store

	DeleteFunc func(ctx context.Context, id uint) error
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{Store: store}
}

func (m *UserRepository) Transaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	return m.Store.withRollback(func() error { return fn(m) })
}

func (m *UserRepository) emailTaken(email string, exceptID uint) bool {
	for _, u := range m.Store.Users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *UserRepository) Create(ctx context.Context, u *models.User) error {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if m.emailTaken(u.Email, 0) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	}
	u.ID = m.Store.id()
	m.Store.Users[u.ID] = *u
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	u, ok := m.Store.Users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	for _, u := range m.Store.Users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *UserRepository) Update(ctx context.Context, u *models.User) error {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.emailTaken(u.Email, u.ID) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	}
	m.Store.Users[u.ID] = *u
	return nil
}

func (m *UserRepository) DeleteAppointmentsOf(ctx context.Context, userID uint) (int64, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	var n int64
	for id, ap := range m.Store.Appointments {
		if ap.ClientID == userID || ap.BarberID == userID {
			delete(m.Store.Appointments, id)
			n++
		}
	}
	return n, nil
}

func (m *UserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.Store.Users, id)
	return nil
}

func (m *UserRepository) List(ctx context.Context, filter domain.ListFilter) ([]models.User, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()

	out := []models.User{}
	for _, u := range m.Store.Users {
		if len(filter.Roles) > 0 && !contains(filter.Roles, u.Role) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *UserRepository) LogAudit(ctx context.Context, entry *models.AuditLog) error {
	m.Store.logAudit(entry)
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*UserRepository)(nil)
