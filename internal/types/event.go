package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventTypeFetched = "fetched"
	EventTypeUsed    = "used"
)

// Event is an append-only usage record against one prompt. Rows are never
// mutated or deleted.
type Event struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PromptID uuid.UUID `gorm:"type:uuid;not null;index" json:"prompt_id"`
	Prompt   *Prompt   `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
	// fetched|used
	Type     string         `gorm:"column:type;not null;index" json:"type"`
	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Event) TableName() string { return "event" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func ValidEventType(t string) bool {
	return t == EventTypeFetched || t == EventTypeUsed
}
