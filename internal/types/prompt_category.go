package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromptCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PromptID   uuid.UUID `gorm:"type:uuid;not null;index:idx_prompt_category,unique,priority:1" json:"prompt_id"`
	Prompt     *Prompt   `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index:idx_prompt_category,unique,priority:2" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PromptCategory) TableName() string { return "prompt_category" }

func (pc *PromptCategory) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return nil
}
