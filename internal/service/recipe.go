package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simmerhub/backend/internal/models"
	"github.com/simmerhub/backend/internal/types"
)

// ImageStore removes stored recipe images. Deletion is best-effort; the
// recipe write never fails because of it.
type ImageStore interface {
	Delete(ctx context.Context, key string) error
}

// RecipeService handles recipe reads and ownership-checked writes. Every
// write runs in one request-scoped transaction.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// CreateRecipe creates a recipe with its ordered ingredient list.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req types.RecipeRequest) (*models.Recipe, error) {
	if err := s.categoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Image:        req.Image,
		UserID:       userID,
		CategoryID:   req.CategoryID,
		Ingredients:  buildIngredients(req.Ingredients),
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 4
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DifficultyMedium
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe with its ingredients in input order.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe updates a recipe owned by userID. The ingredient list is
// replaced wholesale: delete all rows, re-insert the new sequence.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req types.RecipeRequest) (*models.Recipe, error) {
	if err := s.categoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if recipe.UserID != userID {
			return ErrForbidden
		}

		recipe.Title = strings.TrimSpace(req.Title)
		recipe.Description = req.Description
		recipe.Instructions = req.Instructions
		recipe.PrepTime = req.PrepTime
		recipe.CookTime = req.CookTime
		recipe.Difficulty = req.Difficulty
		recipe.CategoryID = req.CategoryID
		if req.Servings > 0 {
			recipe.Servings = req.Servings
		}
		if req.Image != "" {
			recipe.Image = req.Image
		}
		if recipe.Difficulty == "" {
			recipe.Difficulty = models.DifficultyMedium
		}

		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		ingredients := buildIngredients(req.Ingredients)
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
			if err := tx.Create(&ingredients[i]).Error; err != nil {
				return err
			}
		}
		recipe.Ingredients = ingredients
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe owned by userID together with its
// ingredients, comments and ratings. The stored image is removed
// afterwards on a best-effort basis.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	var image string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if recipe.UserID != userID {
			return ErrForbidden
		}
		image = recipe.Image

		for _, child := range []interface{}{&models.Ingredient{}, &models.Comment{}, &models.Rating{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	if image != "" && s.images != nil {
		if err := s.images.Delete(ctx, image); err != nil {
			log.Printf("Failed to delete image %s for recipe %s: %v", image, id, err)
		}
	}
	return nil
}

// ListRecipes returns one page of recipes, newest first, with the total
// count for pagination.
func (s *RecipeService) ListRecipes(ctx context.Context, page, perPage int) ([]models.Recipe, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// TopRatedRecipes returns the highest-rated recipes. Recipes without any
// rating never appear here.
func (s *RecipeService) TopRatedRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN ratings ON ratings.recipe_id = recipes.id").
		Group("recipes.id").
		Order("AVG(ratings.score) DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecentRecipes returns the most recently created recipes.
func (s *RecipeService) RecentRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// CategorySummary is a category with its recipe count, used by the
// navigation and browse listings.
type CategorySummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RecipeCount int64     `json:"recipe_count"`
}

// ListCategories returns all categories with their recipe counts,
// alphabetically.
func (s *RecipeService) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	var categories []CategorySummary
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.id, categories.name, categories.description, COUNT(recipes.id) AS recipe_count").
		Joins("LEFT JOIN recipes ON recipes.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryRecipes returns one page of a category's recipes, newest first.
func (s *RecipeService) CategoryRecipes(ctx context.Context, categoryID uuid.UUID, page, perPage int) (*models.Category, []models.Recipe, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&recipes).Error
	if err != nil {
		return nil, nil, err
	}
	return &category, recipes, nil
}

// ScaleRecipe returns the recipe's ingredient list scaled to newServings.
func (s *RecipeService) ScaleRecipe(ctx context.Context, id uuid.UUID, newServings int) (*types.ScaleResponse, error) {
	if newServings <= 0 {
		return nil, ErrInvalidServings
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	return &types.ScaleResponse{
		OriginalServings: recipe.Servings,
		NewServings:      newServings,
		Ingredients:      ScaleIngredients(recipe.Ingredients, recipe.Servings, newServings),
	}, nil
}

// SetRecipeImage stores a new image key on a recipe owned by userID. The
// previous image, if any, is removed on a best-effort basis.
func (s *RecipeService) SetRecipeImage(ctx context.Context, userID, id uuid.UUID, key string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	previous := recipe.Image
	recipe.Image = key
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}

	if previous != "" && previous != key && s.images != nil {
		if err := s.images.Delete(ctx, previous); err != nil {
			log.Printf("Failed to delete replaced image %s for recipe %s: %v", previous, id, err)
		}
	}
	return &recipe, nil
}

func (s *RecipeService) categoryExists(ctx context.Context, id uuid.UUID) error {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// buildIngredients turns the ordered input sequence into ingredient rows.
// Blank names are skipped; position keeps the input index so the author's
// ordering survives the skips.
func buildIngredients(inputs []types.IngredientInput) []models.Ingredient {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:     name,
			Amount:   in.Amount,
			Unit:     strings.TrimSpace(in.Unit),
			Notes:    strings.TrimSpace(in.Notes),
			Position: i,
		})
	}
	return ingredients
}
