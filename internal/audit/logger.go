package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Writer persists audit rows; repositories implement it on their transaction handle.
type Writer interface {
	LogAudit(ctx context.Context, entry *models.AuditLog) error
}

func (ev Event) Entry() *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
}

func Record(ctx context.Context, w Writer, ev Event) error {
	return w.LogAudit(ctx, ev.Entry())
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) LogAudit(ctx context.Context, entry *models.AuditLog) error {
	return l.db.WithContext(ctx).Create(entry).Error
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	return Record(ctx, l, ev)
}
