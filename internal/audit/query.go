package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

type Query struct {
	Action string
	Entity string
	UserID *uint
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// Normalized clamps paging to page >= 1 and 1 <= limit <= MaxPageSize.
func (q Query) Normalized() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxPageSize {
		q.Limit = DefaultPageSize
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List returns one page of audit rows, newest first.
func (l *Logger) List(ctx context.Context, q Query) (*Page, error) {
	q = q.Normalized()

	db := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.UserID != nil {
		db = db.Where("user_id = ?", *q.UserID)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	logs := []models.AuditLog{}
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return &Page{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Logs:  logs,
	}, nil
}
