package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simmerhub/backend/internal/service"
)

const homeListingLimit = 6

// HomeHandler serves the home listing and category browsing endpoints.
type HomeHandler struct {
	recipes *service.RecipeService
}

func NewHomeHandler(recipes *service.RecipeService) *HomeHandler {
	return &HomeHandler{recipes: recipes}
}

func (h *HomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/home", h.Home)
	router.GET("/categories", h.ListCategories)
	router.GET("/categories/:id/recipes", h.CategoryRecipes)
}

// Home returns the top-rated and most recent recipes plus the category
// list for navigation.
func (h *HomeHandler) Home(c *gin.Context) {
	topRated, err := h.recipes.TopRatedRecipes(c.Request.Context(), homeListingLimit)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch featured recipes")
		return
	}

	recent, err := h.recipes.RecentRecipes(c.Request.Context(), homeListingLimit)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch recent recipes")
		return
	}

	categories, err := h.recipes.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"featured_recipes": topRated,
		"recent_recipes":   recent,
		"categories":       categories,
	})
}

func (h *HomeHandler) ListCategories(c *gin.Context) {
	categories, err := h.recipes.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *HomeHandler) CategoryRecipes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))

	category, recipes, err := h.recipes.CategoryRecipes(c.Request.Context(), id, page, perPage)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch category recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"recipes":  recipes,
		"page":     page,
		"per_page": perPage,
	})
}
