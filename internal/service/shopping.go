package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/simmerhub/backend/internal/types"
)

// RecipeServings pairs a recipe with a target serving count. A zero
// target means "use the recipe's own serving count".
type RecipeServings struct {
	RecipeID uuid.UUID
	Servings int
}

// ShoppingList scales each selected recipe and merges the results into
// one consolidated list. Entries merge when lowercased name and unit both
// match exactly; amounts sum with missing amounts counted as zero, and
// the last merged entry's notes win. Unknown recipe IDs are skipped.
func (s *RecipeService) ShoppingList(ctx context.Context, selections []RecipeServings) ([]types.ScaledIngredient, error) {
	merged := make(map[string]*types.ScaledIngredient)
	var order []string

	for _, sel := range selections {
		recipe, err := s.GetRecipe(ctx, sel.RecipeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}

		target := sel.Servings
		if target <= 0 {
			target = recipe.Servings
		}

		for _, ing := range ScaleIngredients(recipe.Ingredients, recipe.Servings, target) {
			amount := 0.0
			if ing.Amount != nil {
				amount = *ing.Amount
			}

			key := strings.ToLower(ing.Name) + "_" + ing.Unit
			if entry, ok := merged[key]; ok {
				*entry.Amount += amount
				entry.Notes = ing.Notes
			} else {
				total := amount
				merged[key] = &types.ScaledIngredient{
					Name:   ing.Name,
					Amount: &total,
					Unit:   ing.Unit,
					Notes:  ing.Notes,
				}
				order = append(order, key)
			}
		}
	}

	list := make([]types.ScaledIngredient, 0, len(order))
	for _, key := range order {
		entry := merged[key]
		entry.FormattedAmount = FormatAmount(entry.Amount)
		list = append(list, *entry)
	}
	return list, nil
}
