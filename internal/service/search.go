package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/simmerhub/backend/internal/models"
)

// SearchFilters are the optional criteria of a recipe search. Zero values
// mean "not filtered"; active filters combine conjunctively.
type SearchFilters struct {
	Query      string
	CategoryID *uuid.UUID
	Difficulty string
	MaxTime    *int // minutes, prep + cook
}

// SearchRecipes returns the recipes matching the filters, newest first.
// The free-text query is case-insensitive substring containment against
// title, description or instructions. The max-time filter compares
// prep_time + cook_time in SQL, so a recipe missing either value is
// excluded from a time-filtered listing (NULL propagates).
func (s *RecipeService) SearchRecipes(ctx context.Context, f SearchFilters) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(instructions) LIKE ?",
			like, like, like,
		)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.MaxTime != nil {
		query = query.Where("(prep_time + cook_time) <= ?", *f.MaxTime)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
