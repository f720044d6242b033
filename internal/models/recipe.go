package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe difficulty levels.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Difficulties lists the accepted difficulty values.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Recipe is the central entity: authored by one user, filed under one
// category, carrying an ordered ingredient list.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	PrepTime     *int      `json:"prep_time"` // minutes
	CookTime     *int      `json:"cook_time"` // minutes
	Servings     int       `gorm:"default:4" json:"servings"`
	Difficulty   string    `gorm:"size:20;default:'Medium'" json:"difficulty"`
	Image        string    `gorm:"size:100" json:"image"`

	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`

	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Comments    []Comment    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ratings     []Rating     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime is prep plus cook time, treating missing values as zero.
func (r *Recipe) TotalTime() int {
	total := 0
	if r.PrepTime != nil {
		total += *r.PrepTime
	}
	if r.CookTime != nil {
		total += *r.CookTime
	}
	return total
}

// Ingredient is one line of a recipe's ingredient list. Position preserves
// the order the author entered them in.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Amount   *float64  `json:"amount"`
	Unit     string    `gorm:"size:50" json:"unit"`
	Notes    string    `gorm:"size:200" json:"notes"`
	Position int       `gorm:"default:0" json:"position"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
