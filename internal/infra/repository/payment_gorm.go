package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentGormRepository{db: tx})
	})
}

func (r *PaymentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *PaymentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PaymentGormRepository) FindByExternalSessionID(
	ctx context.Context,
	sessionID string,
) (*models.Payment, error) {

	var p models.Payment
	err := r.db.WithContext(ctx).
		Where("external_session_id = ?", sessionID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Payment, error) {

	q := r.db.WithContext(ctx).Model(&models.Payment{})

	if filter.PayerID != nil {
		q = q.Where("payer_user_id = ?", *filter.PayerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Method != nil {
		q = q.Where("method = ?", string(*filter.Method))
	}
	if filter.From != nil {
		q = q.Where("paid_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("paid_at < ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var payments []models.Payment
	if err := q.Order("paid_at DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentGormRepository) LogAudit(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
