package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserGormRepository{db: tx})
	})
}

func (r *UserGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Update(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserGormRepository) DeleteAppointmentsOf(
	ctx context.Context,
	userID uint,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("client_id = ? OR barber_id = ?", userID, userID).
		Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}

func (r *UserGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserGormRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.User, error) {

	q := r.db.WithContext(ctx)
	if len(filter.Roles) > 0 {
		q = q.Where("role IN ?", filter.Roles)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) LogAudit(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
