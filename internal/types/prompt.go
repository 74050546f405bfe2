package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prompt is a generated recall question. Rows are immutable after creation;
// only events are ever appended against them.
type Prompt struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text     string    `gorm:"column:text;not null" json:"text"`
	Language string    `gorm:"column:language;not null;default:'es'" json:"language"`
	// Ordered list of extracted search keywords (0-5 strings).
	Keywords datatypes.JSON `gorm:"type:jsonb;column:keywords" json:"keywords"`
	Source   string         `gorm:"column:source;not null;default:'openai'" json:"source"`
	Model    string         `gorm:"column:model" json:"model,omitempty"`

	Categories []*PromptCategory `gorm:"foreignKey:PromptID;references:ID" json:"categories,omitempty"`
	Events     []*Event          `gorm:"foreignKey:PromptID;references:ID" json:"events,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Prompt) TableName() string { return "prompt" }

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CategoryNames flattens the join rows into the linked category names.
func (p *Prompt) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, link := range p.Categories {
		if link != nil && link.Category != nil {
			names = append(names, link.Category.Name)
		}
	}
	return names
}
