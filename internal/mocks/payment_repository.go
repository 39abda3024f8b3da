package mocks

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type PaymentRepository struct {
	Store *Store

	// FindByExternalSessionIDFunc lets a test hide an existing row from the
	// pre-check, which is what a concurrent writer looks like.
	FindByExternalSessionIDFunc func(ctx context.Context, sessionID string) (*models.Payment, error)
	CreatePaymentFunc           func(ctx context.Context, p *models.Payment) error
}

func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{Store: store}
}

func (m *PaymentRepository) Transaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	return m.Store.withRollback(func() error { return fn(m) })
}

func (m *PaymentRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	ap, ok := m.Store.Appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	ap = m.Store.hydrate(ap)
	return &ap, nil
}

func (m *PaymentRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	svc, ok := m.Store.Services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &svc, nil
}

func (m *PaymentRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, p)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()

	if p.ExternalSessionID != nil {
		for _, existing := range m.Store.Payments {
			if existing.ExternalSessionID != nil && *existing.ExternalSessionID == *p.ExternalSessionID {
				return &pgconn.PgError{Code: "23505", ConstraintName: "idx_payments_external_session_id"}
			}
		}
	}

	p.ID = m.Store.id()
	stored := *p
	stored.Appointment = nil
	stored.Payer = nil
	stored.CreatedBy = nil
	m.Store.Payments[p.ID] = stored
	return nil
}

func (m *PaymentRepository) FindByExternalSessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	if m.FindByExternalSessionIDFunc != nil {
		return m.FindByExternalSessionIDFunc(ctx, sessionID)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	for _, p := range m.Store.Payments {
		if p.ExternalSessionID != nil && *p.ExternalSessionID == sessionID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (m *PaymentRepository) ListPayments(ctx context.Context, filter domain.ListFilter) ([]models.Payment, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()

	out := []models.Payment{}
	for _, p := range m.Store.Payments {
		if filter.PayerID != nil && (p.PayerUserID == nil || *p.PayerUserID != *filter.PayerID) {
			continue
		}
		if filter.Status != nil && p.Status != string(*filter.Status) {
			continue
		}
		if filter.Method != nil && p.Method != string(*filter.Method) {
			continue
		}
		if filter.From != nil && p.PaidAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !p.PaidAt.Before(*filter.To) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PaidAt.Equal(out[j].PaidAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].PaidAt.After(out[j].PaidAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *PaymentRepository) LogAudit(ctx context.Context, entry *models.AuditLog) error {
	m.Store.logAudit(entry)
	return nil
}

var _ domain.Repository = (*PaymentRepository)(nil)
