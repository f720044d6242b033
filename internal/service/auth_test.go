package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simmerhub/backend/internal/models"
	"github.com/simmerhub/backend/internal/types"
)

const testSecret = "test-secret"

func registerTestUser(t *testing.T, svc *AuthService, username string) (string, *models.User) {
	t.Helper()
	token, user, err := svc.Register(context.Background(), types.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return token, user
}

func TestRegisterAndValidateToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)

	token, user, err := svc.Register(context.Background(), types.RegisterRequest{
		Username:  "newcook",
		Email:     "newcook@example.com",
		Password:  "password123",
		FirstName: "New",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.IsActive)
	// Never the plain password.
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "newcook", claims.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)
	registerTestUser(t, svc, "first")

	_, _, err := svc.Register(context.Background(), types.RegisterRequest{
		Username: "different",
		Email:    "first@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)
	registerTestUser(t, svc, "first")

	_, _, err := svc.Register(context.Background(), types.RegisterRequest{
		Username: "first",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)
	registerTestUser(t, svc, "cook")

	token, user, err := svc.Login(context.Background(), "cook@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "cook", user.Username)

	_, _, err = svc.Login(context.Background(), "cook@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)
	token, _ := registerTestUser(t, svc, "cook")

	other := NewAuthService(db, "another-secret")
	_, err := other.ValidateToken(token)
	assert.Error(t, err)
}

func TestGetProfileIncludesOwnRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)
	_, user := registerTestUser(t, svc, "cook")
	other := createTestUser(t, db, "other")
	category := createTestCategory(t, db, "Dinner")

	base := time.Now().Add(-time.Hour)
	createTestRecipe(t, db, user, category, "Older", base)
	createTestRecipe(t, db, user, category, "Newer", base.Add(time.Minute))
	createTestRecipe(t, db, other, category, "Not Mine", base)

	profile, recipes, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cook", profile.Username)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Newer", recipes[0].Title)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret)
	_, user := registerTestUser(t, svc, "cook")

	updated, err := svc.UpdateProfile(context.Background(), user.ID, types.UpdateProfileRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Bio:       "I bake.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "I bake.", updated.Bio)
	assert.Equal(t, "Ada Lovelace", updated.DisplayName())
}
