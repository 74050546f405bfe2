package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a named node in the prompt hierarchy. Name is unique across the
// whole tree, not just among siblings; a nil ParentID marks a root.
type Category struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string      `gorm:"column:name;not null;uniqueIndex" json:"name"`
	ParentID *uuid.UUID  `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent   *Category   `gorm:"foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	Children []*Category `gorm:"foreignKey:ParentID;references:ID" json:"children,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string { return "category" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
