package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

func TestRecordEventRejectsUnknownTypeBeforeWrite(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewEventService(db, log, repos.NewEventRepo(db, log))

	familia := insertCategory(t, db, "Familia")
	prompt := insertPrompt(t, db, "¿Qué recuerdas?", nil, familia)

	for _, badType := range []string{"viewed", "", "FETCHED", "used "} {
		_, err := svc.Record(context.Background(), prompt.ID, badType, nil)
		if !apierr.Is(err, apierr.CodeValidation) {
			t.Fatalf("type %q: err=%v, want %s", badType, err, apierr.CodeValidation)
		}
	}

	var count int64
	if err := db.Model(&types.Event{}).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 0 {
		t.Fatalf("stored %d events after rejected types, want 0", count)
	}
}

func TestRecordEventAppendsRow(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewEventService(db, log, repos.NewEventRepo(db, log))

	familia := insertCategory(t, db, "Familia")
	prompt := insertPrompt(t, db, "¿Qué recuerdas?", nil, familia)

	event, err := svc.Record(context.Background(), prompt.ID, types.EventTypeUsed, map[string]interface{}{
		"session": "abc123",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if event.Type != types.EventTypeUsed {
		t.Fatalf("type=%q", event.Type)
	}

	var stored []*types.Event
	if err := db.Where("prompt_id = ?", prompt.ID).Find(&stored).Error; err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d events, want 1", len(stored))
	}
	if string(stored[0].Metadata) != `{"session":"abc123"}` {
		t.Fatalf("metadata=%s", stored[0].Metadata)
	}

	// No deduplication: the same event can be recorded again.
	if _, err := svc.Record(context.Background(), prompt.ID, types.EventTypeUsed, nil); err != nil {
		t.Fatalf("second Record: %v", err)
	}
	var count int64
	if err := db.Model(&types.Event{}).Where("prompt_id = ?", prompt.ID).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
}

func TestRecordEventRequiresPromptID(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewEventService(db, log, repos.NewEventRepo(db, log))

	_, err := svc.Record(context.Background(), uuid.Nil, types.EventTypeFetched, nil)
	if !apierr.Is(err, apierr.CodeValidation) {
		t.Fatalf("err=%v, want %s", err, apierr.CodeValidation)
	}
}
