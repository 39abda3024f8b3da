package mocks

import (
	"context"
	"sort"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type AppointmentRepository struct {
	Store *Store

	// Optional overrides, checked before the in-memory behaviour.
	CreateAppointmentFunc       func(ctx context.Context, ap *models.Appointment) error
	UpdateAppointmentStatusFunc func(ctx context.Context, ap *models.Appointment) error
	ListAppointmentsFunc        func(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error)
}

func NewAppointmentRepository(store *Store) *AppointmentRepository {
	return &AppointmentRepository{Store: store}
}

func (m *AppointmentRepository) Transaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	return m.Store.withRollback(func() error { return fn(m) })
}

func (m *AppointmentRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	u, ok := m.Store.Users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *AppointmentRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	svc, ok := m.Store.Services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &svc, nil
}

func (m *AppointmentRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.CreateAppointmentFunc != nil {
		return m.CreateAppointmentFunc(ctx, ap)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	ap.ID = m.Store.id()
	m.Store.Appointments[ap.ID] = *ap
	return nil
}

func (m *AppointmentRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	ap, ok := m.Store.Appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	ap = m.Store.hydrate(ap)
	return &ap, nil
}

func (m *AppointmentRepository) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetAppointment(ctx, id)
}

func (m *AppointmentRepository) UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment) error {
	if m.UpdateAppointmentStatusFunc != nil {
		return m.UpdateAppointmentStatusFunc(ctx, ap)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	stored, ok := m.Store.Appointments[ap.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = ap.Status
	m.Store.Appointments[ap.ID] = stored
	return nil
}

func (m *AppointmentRepository) DeleteAppointment(ctx context.Context, id uint) error {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Appointments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.Store.Appointments, id)
	return nil
}

func (m *AppointmentRepository) ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	if m.ListAppointmentsFunc != nil {
		return m.ListAppointmentsFunc(ctx, filter)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range m.Store.Appointments {
		if filter.ClientID != nil && ap.ClientID != *filter.ClientID {
			continue
		}
		if filter.BarberID != nil && ap.BarberID != *filter.BarberID {
			continue
		}
		if filter.Status != nil && ap.Status != string(*filter.Status) {
			continue
		}
		if filter.From != nil && ap.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !ap.ScheduledAt.Before(*filter.To) {
			continue
		}
		out = append(out, m.Store.hydrate(ap))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.After(out[j].ScheduledAt)
	})
	return out, nil
}

func (m *AppointmentRepository) LogAudit(ctx context.Context, entry *models.AuditLog) error {
	m.Store.logAudit(entry)
	return nil
}

var _ domain.Repository = (*AppointmentRepository)(nil)
