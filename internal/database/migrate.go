package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/simmerhub/backend/internal/models"
)

// defaultCategories is the seed set created on an empty database.
var defaultCategories = []string{
	"Italian", "Mexican", "Asian", "Mediterranean", "American",
	"Indian", "French", "Thai", "Greek", "Spanish",
	"Appetizers", "Main Course", "Desserts", "Beverages",
	"Vegetarian", "Vegan", "Gluten-Free", "Quick & Easy",
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Comment{},
		&models.Rating{},
	)
}

// SeedCategories inserts the default category set when none exist yet.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range defaultCategories {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}
	log.Printf("Seeded %d default categories", len(defaultCategories))
	return nil
}
