package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is free-text user feedback on a recipe. Comments are append-only.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`

	User User `json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
