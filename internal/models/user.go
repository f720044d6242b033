package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can publish recipes, comment and rate.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	FirstName    string    `gorm:"size:50" json:"first_name"`
	LastName     string    `gorm:"size:50" json:"last_name"`
	Bio          string    `gorm:"type:text" json:"bio"`
	ProfileImage string    `gorm:"size:100;default:'default.jpg'" json:"profile_image"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	// Everything a user owns goes with the user.
	Recipes  []Recipe  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ratings  []Rating  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName joins the first and last name, falling back to the
// username when neither is set.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Username
}
