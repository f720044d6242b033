package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a 1-5 score. The composite unique index keeps it to one rating
// per user per recipe; a repeated rate action updates the row in place.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_rating" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_rating" json:"recipe_id"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
