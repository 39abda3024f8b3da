package audit

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

type captureWriter struct {
	entries []*models.AuditLog
}

func (w *captureWriter) LogAudit(_ context.Context, entry *models.AuditLog) error {
	w.entries = append(w.entries, entry)
	return nil
}

func TestRecord_MarshalsMetadata(t *testing.T) {
	w := &captureWriter{}
	userID := uint(7)
	entityID := uint(3)

	err := Record(context.Background(), w, Event{
		UserID:   &userID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &entityID,
		Metadata: map[string]string{"from": "pending", "to": "confirmed"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(w.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(w.entries))
	}
	got := w.entries[0]
	if got.Metadata != `{"from":"pending","to":"confirmed"}` {
		t.Errorf("unexpected metadata %q", got.Metadata)
	}
	if *got.UserID != 7 || *got.EntityID != 3 || got.Action != "appointment_status_changed" {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestEntry_NilMetadata(t *testing.T) {
	entry := Event{Action: "user_deleted", Entity: "user"}.Entry()
	if entry.Metadata != "" {
		t.Errorf("expected empty metadata, got %q", entry.Metadata)
	}
}

func TestQuery_Normalized(t *testing.T) {
	tests := []struct {
		in         Query
		page       int
		limit      int
		wantOffset int
	}{
		{Query{}, 1, DefaultPageSize, 0},
		{Query{Page: 3, Limit: 20}, 3, 20, 40},
		{Query{Page: -1, Limit: 500}, 1, DefaultPageSize, 0},
		{Query{Page: 2, Limit: MaxPageSize}, 2, MaxPageSize, MaxPageSize},
	}

	for _, tt := range tests {
		got := tt.in.Normalized()
		if got.Page != tt.page || got.Limit != tt.limit || got.Offset() != tt.wantOffset {
			t.Errorf("Normalized(%+v) = page %d limit %d offset %d", tt.in, got.Page, got.Limit, got.Offset())
		}
	}
}
