package service

import (
	"strconv"

	"github.com/simmerhub/backend/internal/models"
	"github.com/simmerhub/backend/internal/types"
)

// fractions maps the decimal amounts that render as vulgar fractions.
// Exact-value matching only; anything else renders as its decimal string.
var fractions = map[float64]string{
	0.5:  "1/2",
	0.25: "1/4",
	0.75: "3/4",
	0.33: "1/3",
	0.67: "2/3",
}

// ScaleIngredients multiplies each ingredient amount by
// newServings/originalServings, keeping input order. When the original
// serving count is zero the list is returned unscaled, and ingredients
// without an amount keep none.
func ScaleIngredients(ingredients []models.Ingredient, originalServings, newServings int) []types.ScaledIngredient {
	factor := 1.0
	if originalServings > 0 {
		factor = float64(newServings) / float64(originalServings)
	}

	scaled := make([]types.ScaledIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		var amount *float64
		if ing.Amount != nil {
			v := *ing.Amount * factor
			amount = &v
		}
		scaled = append(scaled, types.ScaledIngredient{
			Name:            ing.Name,
			Amount:          amount,
			FormattedAmount: FormatAmount(amount),
			Unit:            ing.Unit,
			Notes:           ing.Notes,
		})
	}
	return scaled
}

// FormatAmount renders an ingredient amount for display. Missing or zero
// amounts render empty, a handful of common sub-unit decimals render as
// fractions, whole numbers drop the decimal point.
func FormatAmount(amount *float64) string {
	if amount == nil || *amount == 0 {
		return ""
	}

	v := *amount
	if v < 1 {
		if frac, ok := fractions[v]; ok {
			return frac
		}
	}

	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
