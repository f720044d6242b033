package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simmerhub/backend/internal/middleware"
	"github.com/simmerhub/backend/internal/models"
	"github.com/simmerhub/backend/internal/service"
	"github.com/simmerhub/backend/internal/types"
)

const maxImageBytes = 16 << 20 // 16MB

// RecipeHandler exposes the recipe CRUD, scaling, shopping-list and
// interaction endpoints.
type RecipeHandler struct {
	recipes            *service.RecipeService
	ratings            *service.RatingService
	images             *service.ImageService
	auth               middleware.TokenValidator
	writeLimiter       *middleware.RateLimiter
	interactionLimiter *middleware.RateLimiter
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	ratings *service.RatingService,
	images *service.ImageService,
	auth middleware.TokenValidator,
	writeLimiter *middleware.RateLimiter,
	interactionLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:            recipes,
		ratings:            ratings,
		images:             images,
		auth:               auth,
		writeLimiter:       writeLimiter,
		interactionLimiter: interactionLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", middleware.OptionalAuth(h.auth), h.GetRecipe)
		recipes.POST("", middleware.RequireAuth(h.auth), h.writeLimiter.Middleware(), h.CreateRecipe)
		recipes.PUT("/:id", middleware.RequireAuth(h.auth), h.writeLimiter.Middleware(), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.RequireAuth(h.auth), h.DeleteRecipe)
		recipes.GET("/:id/scale", middleware.RequireAuth(h.auth), h.ScaleRecipe)
		recipes.POST("/:id/comments", middleware.RequireAuth(h.auth), h.interactionLimiter.Middleware(), h.AddComment)
		recipes.POST("/:id/rate", middleware.RequireAuth(h.auth), h.interactionLimiter.Middleware(), h.RateRecipe)
		recipes.POST("/:id/image", middleware.RequireAuth(h.auth), h.UploadImage)
	}

	router.GET("/shopping-list", middleware.RequireAuth(h.auth), h.ShoppingList)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))

	recipes, total, err := h.recipes.ListRecipes(c.Request.Context(), page, perPage)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":  recipes,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	filters := service.SearchFilters{
		Query:      c.Query("q"),
		Difficulty: c.Query("difficulty"),
	}

	if category := c.Query("category"); category != "" {
		id, err := uuid.Parse(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		filters.CategoryID = &id
	}
	if maxTime := c.Query("max_time"); maxTime != "" {
		minutes, err := strconv.Atoi(maxTime)
		if err != nil || minutes < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_time"})
			return
		}
		filters.MaxTime = &minutes
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err, "Failed to search recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch recipe")
		return
	}

	comments, err := h.ratings.ListComments(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch comments")
		return
	}

	average, err := h.ratings.AverageRating(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch rating")
		return
	}

	response := gin.H{
		"recipe":         recipe,
		"comments":       commentViews(comments),
		"average_rating": average,
	}

	// The requester's own rating, when logged in and present.
	if userID, ok := currentUserID(c); ok {
		rating, err := h.ratings.UserRating(c.Request.Context(), userID, id)
		if err != nil {
			handleServiceError(c, err, "Failed to fetch rating")
			return
		}
		if rating != nil {
			response["user_rating"] = rating.Score
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, req)
	if err != nil {
		handleServiceError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err, "Failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	servings, err := strconv.Atoi(c.Query("servings"))
	if err != nil || servings <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidServings.Error()})
		return
	}

	scaled, err := h.recipes.ScaleRecipe(c.Request.Context(), id, servings)
	if err != nil {
		handleServiceError(c, err, "Failed to scale recipe")
		return
	}

	c.JSON(http.StatusOK, scaled)
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.ratings.AddComment(c.Request.Context(), userID, id, req.Content)
	if err != nil {
		handleServiceError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": types.CommentResponse{
			Content:   comment.Content,
			Author:    comment.User.Username,
			CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04"),
		},
	})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	average, err := h.ratings.RateRecipe(c.Request.Context(), userID, id, req.Score)
	if err != nil {
		handleServiceError(c, err, "Failed to rate recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"new_average": average,
		"user_rating": req.Score,
	})
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	// Ownership is enforced before touching storage.
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch recipe")
		return
	}
	if recipe.UserID != userID {
		handleServiceError(c, service.ErrForbidden, "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	key, err := h.images.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		handleServiceError(c, err, "Failed to store image")
		return
	}

	if _, err := h.recipes.SetRecipeImage(c.Request.Context(), userID, id, key); err != nil {
		handleServiceError(c, err, "Failed to update recipe image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image": key,
		"url":   h.images.URL(key),
	})
}

func (h *RecipeHandler) ShoppingList(c *gin.Context) {
	ids := c.QueryArray("recipes")
	servings := c.QueryArray("servings")

	selections := make([]service.RecipeServings, 0, len(ids))
	for i, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		sel := service.RecipeServings{RecipeID: id}
		if i < len(servings) {
			if n, err := strconv.Atoi(servings[i]); err == nil {
				sel.Servings = n
			}
		}
		selections = append(selections, sel)
	}

	list, err := h.recipes.ShoppingList(c.Request.Context(), selections)
	if err != nil {
		handleServiceError(c, err, "Failed to build shopping list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": list})
}

func commentViews(comments []models.Comment) []types.CommentResponse {
	views := make([]types.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		views = append(views, types.CommentResponse{
			Content:   comment.Content,
			Author:    comment.User.Username,
			CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return views
}
