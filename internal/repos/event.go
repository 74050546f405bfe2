package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

// EventRepo only appends; events are read back through the prompt preloads.
type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.Event) (*types.Event, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	repoLog := baseLog.With("repo", "EventRepo")
	return &eventRepo{db: db, log: repoLog}
}

func (r *eventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.Event) (*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}
