package mocks

import (
	"context"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// AuditLog pages through Store.Audits the way audit.Logger.List does.
type AuditLog struct {
	Store *Store
}

func (m *AuditLog) List(ctx context.Context, q audit.Query) (*audit.Page, error) {
	q = q.Normalized()

	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()

	matched := []models.AuditLog{}
	for i := len(m.Store.Audits) - 1; i >= 0; i-- {
		e := m.Store.Audits[i]
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		if q.Entity != "" && e.Entity != q.Entity {
			continue
		}
		if q.UserID != nil && (e.UserID == nil || *e.UserID != *q.UserID) {
			continue
		}
		if q.From != nil && e.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !e.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, e)
	}

	logs := []models.AuditLog{}
	if start := q.Offset(); start < len(matched) {
		end := start + q.Limit
		if end > len(matched) {
			end = len(matched)
		}
		logs = matched[start:end]
	}

	return &audit.Page{
		Page:  q.Page,
		Limit: q.Limit,
		Total: int64(len(matched)),
		Logs:  logs,
	}, nil
}
