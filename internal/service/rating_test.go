package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simmerhub/backend/internal/models"
)

func TestRateRecipeCreatesAndUpdates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "rater")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, user, category, "Stew", time.Now())

	avg, err := svc.RateRecipe(context.Background(), user.ID, recipe.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)

	// Re-rating updates the row instead of adding a second one.
	avg, err = svc.RateRecipe(context.Background(), user.ID, recipe.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRateRecipeScoreBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "rater")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, user, category, "Stew", time.Now())

	_, err := svc.RateRecipe(context.Background(), user.ID, recipe.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = svc.RateRecipe(context.Background(), user.ID, recipe.ID, 6)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.RateRecipe(context.Background(), user.ID, recipe.ID, 1)
	assert.NoError(t, err)
	_, err = svc.RateRecipe(context.Background(), user.ID, recipe.ID, 5)
	assert.NoError(t, err)
}

func TestRateRecipeUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "rater")

	_, err := svc.RateRecipe(context.Background(), user.ID, uuid.New(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAverageRatingAcrossUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, alice, category, "Stew", time.Now())

	_, err := svc.RateRecipe(context.Background(), alice.ID, recipe.ID, 2)
	require.NoError(t, err)
	avg, err := svc.RateRecipe(context.Background(), bob.ID, recipe.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)
}

func TestAverageRatingZeroWhenUnrated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "rater")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, user, category, "Stew", time.Now())

	avg, err := svc.AverageRating(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestUserRatingNilWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "rater")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, user, category, "Stew", time.Now())

	rating, err := svc.UserRating(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Nil(t, rating)

	_, err = svc.RateRecipe(context.Background(), user.ID, recipe.ID, 4)
	require.NoError(t, err)

	rating, err = svc.UserRating(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 4, rating.Score)
}

func TestAddCommentLoadsAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "talker")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, user, category, "Stew", time.Now())

	comment, err := svc.AddComment(context.Background(), user.ID, recipe.ID, "Loved it")
	require.NoError(t, err)
	assert.Equal(t, "Loved it", comment.Content)
	assert.Equal(t, "talker", comment.User.Username)
}

func TestAddCommentUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "talker")

	_, err := svc.AddComment(context.Background(), user.ID, uuid.New(), "Loved it")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	user := createTestUser(t, db, "talker")
	category := createTestCategory(t, db, "Dinner")
	recipe := createTestRecipe(t, db, user, category, "Stew", time.Now())

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"first", "second", "third"} {
		comment := &models.Comment{Content: content, UserID: user.ID, RecipeID: recipe.ID}
		require.NoError(t, db.Create(comment).Error)
		require.NoError(t, db.Model(comment).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	comments, err := svc.ListComments(context.Background(), recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "first", comments[2].Content)
	assert.Equal(t, "talker", comments[0].User.Username)
}
