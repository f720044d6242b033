package types

import (
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=80"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the editable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
	Bio       string `json:"bio"`
}

// IngredientInput is one ingredient row as entered by the author. Inputs
// arrive as a single ordered sequence; entries with a blank name are
// skipped rather than rejected.
type IngredientInput struct {
	Name   string   `json:"name"`
	Amount *float64 `json:"amount" binding:"omitempty,gt=0"`
	Unit   string   `json:"unit"`
	Notes  string   `json:"notes"`
}

// RecipeRequest is the write payload for both create and edit. Edits
// replace the ingredient list wholesale.
type RecipeRequest struct {
	Title        string            `json:"title" binding:"required,max=200"`
	Description  string            `json:"description"`
	Instructions string            `json:"instructions" binding:"required"`
	PrepTime     *int              `json:"prep_time" binding:"omitempty,min=0"`
	CookTime     *int              `json:"cook_time" binding:"omitempty,min=0"`
	Servings     int               `json:"servings" binding:"omitempty,gt=0"`
	Difficulty   string            `json:"difficulty" binding:"omitempty,difficulty"`
	CategoryID   uuid.UUID         `json:"category_id" binding:"required"`
	Image        string            `json:"image"`
	Ingredients  []IngredientInput `json:"ingredients"`
}

// CommentRequest represents the request body for adding a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// RateRequest represents the request body for rating a recipe. Range is
// checked by the rating service so a bad score gets the same error shape
// as a missing one.
type RateRequest struct {
	Score int `json:"score"`
}

// ScaledIngredient is one line of a scaled ingredient list or shopping
// list. Amount stays nil when the source ingredient had none.
type ScaledIngredient struct {
	Name            string   `json:"name"`
	Amount          *float64 `json:"amount"`
	FormattedAmount string   `json:"formatted_amount"`
	Unit            string   `json:"unit"`
	Notes           string   `json:"notes"`
}

// ScaleResponse is the payload of the scaling endpoint.
type ScaleResponse struct {
	OriginalServings int                `json:"original_servings"`
	NewServings      int                `json:"new_servings"`
	Ingredients      []ScaledIngredient `json:"ingredients"`
}

// CommentResponse is the JSON view of a freshly added comment.
type CommentResponse struct {
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}
