package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simmerhub/backend/internal/models"
)

func TestSearchRecipesNoFiltersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	category := createTestCategory(t, db, "Dinner")

	base := time.Now().Add(-time.Hour)
	createTestRecipe(t, db, user, category, "Older", base)
	createTestRecipe(t, db, user, category, "Newer", base.Add(time.Minute))

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Newer", results[0].Title)
	assert.Equal(t, "Older", results[1].Title)
}

func TestSearchRecipesQueryCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	category := createTestCategory(t, db, "Dinner")

	createTestRecipe(t, db, user, category, "Chicken Curry", time.Now())
	createTestRecipe(t, db, user, category, "Beef Stew", time.Now())

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{Query: "CHICK"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Chicken Curry", results[0].Title)
}

func TestSearchRecipesQueryMatchesDescriptionAndInstructions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	category := createTestCategory(t, db, "Dinner")

	byDescription := createTestRecipe(t, db, user, category, "Plain Title", time.Now())
	require.NoError(t, db.Model(byDescription).Update("description", "A smoky paprika base").Error)
	byInstructions := createTestRecipe(t, db, user, category, "Another Title", time.Now())
	require.NoError(t, db.Model(byInstructions).Update("instructions", "Add paprika last.").Error)
	createTestRecipe(t, db, user, category, "No Match", time.Now())

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{Query: "paprika"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchRecipesCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	dinner := createTestCategory(t, db, "Dinner")
	dessert := createTestCategory(t, db, "Dessert")

	createTestRecipe(t, db, user, dinner, "Stew", time.Now())
	createTestRecipe(t, db, user, dessert, "Cake", time.Now())

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{CategoryID: &dessert.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cake", results[0].Title)
}

func TestSearchRecipesDifficultyFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	category := createTestCategory(t, db, "Dinner")

	easy := createTestRecipe(t, db, user, category, "Toast", time.Now())
	require.NoError(t, db.Model(easy).Update("difficulty", models.DifficultyEasy).Error)
	createTestRecipe(t, db, user, category, "Stew", time.Now())

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{Difficulty: models.DifficultyEasy})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Toast", results[0].Title)
}

func TestSearchRecipesMaxTimeFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	category := createTestCategory(t, db, "Dinner")

	quick := createTestRecipe(t, db, user, category, "Quick", time.Now())
	require.NoError(t, db.Model(quick).Updates(map[string]interface{}{"prep_time": 10, "cook_time": 15}).Error)
	slow := createTestRecipe(t, db, user, category, "Slow", time.Now())
	require.NoError(t, db.Model(slow).Updates(map[string]interface{}{"prep_time": 30, "cook_time": 90}).Error)
	// No times recorded, so this one drops out of any time-filtered search.
	createTestRecipe(t, db, user, category, "Untimed", time.Now())

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{MaxTime: intPtr(30)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Quick", results[0].Title)
}

func TestSearchRecipesConjunctiveFiltersCanBeEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	user := createTestUser(t, db, "cook")
	dinner := createTestCategory(t, db, "Dinner")
	dessert := createTestCategory(t, db, "Dessert")

	createTestRecipe(t, db, user, dinner, "Chicken Curry", time.Now())

	results, err := svc.SearchRecipes(context.Background(), SearchFilters{
		Query:      "chicken",
		CategoryID: &dessert.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
