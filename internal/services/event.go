package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

// EventService appends immutable usage events against prompts. Validation
// happens before any write; there is no deduplication and no throttling.
type EventService interface {
	Record(ctx context.Context, promptID uuid.UUID, eventType string, metadata map[string]interface{}) (*types.Event, error)
}

type eventService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.EventRepo
}

func NewEventService(db *gorm.DB, log *logger.Logger, eventRepo repos.EventRepo) EventService {
	serviceLog := log.With("service", "EventService")
	return &eventService{db: db, log: serviceLog, eventRepo: eventRepo}
}

func (s *eventService) Record(ctx context.Context, promptID uuid.UUID, eventType string, metadata map[string]interface{}) (*types.Event, error) {
	if promptID == uuid.Nil {
		return nil, apierr.Validation(fmt.Errorf("prompt id is required"))
	}
	if !types.ValidEventType(eventType) {
		return nil, apierr.Validation(fmt.Errorf("invalid event type %q", eventType))
	}

	// Metadata is schema-less; the only requirement is that it serializes.
	var metadataJSON datatypes.JSON
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, apierr.Validation(fmt.Errorf("metadata is not serializable: %w", err))
		}
		metadataJSON = datatypes.JSON(raw)
	}

	event := &types.Event{
		ID:       uuid.New(),
		PromptID: promptID,
		Type:     eventType,
		Metadata: metadataJSON,
	}
	created, err := s.eventRepo.Create(ctx, nil, event)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return created, nil
}
