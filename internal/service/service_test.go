package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/simmerhub/backend/internal/models"
)

// setupTestDB opens a fresh in-memory sqlite database with the full
// schema. TranslateError matches the production configuration so
// duplicate-key handling behaves the same.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Comment{},
		&models.Rating{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// createTestRecipe inserts a recipe with an explicit creation time so
// ordering assertions are deterministic.
func createTestRecipe(t *testing.T, db *gorm.DB, user *models.User, category *models.Category, title string, createdAt time.Time) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:        title,
		Instructions: "Mix and cook.",
		Servings:     4,
		Difficulty:   models.DifficultyMedium,
		UserID:       user.ID,
		CategoryID:   category.ID,
	}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Model(recipe).UpdateColumn("created_at", createdAt).Error)
	recipe.CreatedAt = createdAt
	return recipe
}

func addIngredient(t *testing.T, db *gorm.DB, recipe *models.Recipe, name string, amount *float64, unit string, position int) *models.Ingredient {
	t.Helper()
	ing := &models.Ingredient{
		RecipeID: recipe.ID,
		Name:     name,
		Amount:   amount,
		Unit:     unit,
		Position: position,
	}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
