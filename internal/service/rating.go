package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simmerhub/backend/internal/models"
)

// RatingService handles ratings and comments on recipes.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// RateRecipe records a 1-5 score for (user, recipe), updating the user's
// existing rating in place if there is one. Returns the recipe's new
// average. The check-then-act can race with a concurrent submission by
// the same user; the unique index turns that into a duplicate-key error,
// which is retried as an update.
func (s *RatingService) RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, score int) (float64, error) {
	if score < 1 || score > 5 {
		return 0, ErrInvalidScore
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
		if err == nil {
			existing.Score = score
			return tx.Save(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rating := models.Rating{
			Score:    score,
			UserID:   userID,
			RecipeID: recipeID,
		}
		if err := tx.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.Rating{}).
					Where("user_id = ? AND recipe_id = ?", userID, recipeID).
					Update("score", score).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return s.AverageRating(ctx, recipeID)
}

// AverageRating recomputes the arithmetic mean of all scores for the
// recipe, 0 when it has none. Never cached.
func (s *RatingService) AverageRating(ctx context.Context, recipeID uuid.UUID) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// UserRating returns the user's rating for the recipe, or nil.
func (s *RatingService) UserRating(ctx context.Context, userID, recipeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// AddComment appends a comment to a recipe. Comments have no edit or
// delete operation.
func (s *RatingService) AddComment(ctx context.Context, userID, recipeID uuid.UUID, content string) (*models.Comment, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		Content:  content,
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a recipe's comments, newest first, with authors.
func (s *RatingService) ListComments(ctx context.Context, recipeID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
