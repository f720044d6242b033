package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/simmerhub/backend/internal/middleware"
	"github.com/simmerhub/backend/internal/service"
)

// SetupAPI wires services, middleware and handlers onto the router.
// redisClient and images may be nil; rate limiting and image handling
// degrade gracefully without them.
func SetupAPI(router *gin.Engine, db *gorm.DB, jwtSecret string, redisClient *redis.Client, images *service.ImageService) {
	authService := service.NewAuthService(db, jwtSecret)
	ratingService := service.NewRatingService(db)

	var imageStore service.ImageStore
	if images != nil {
		imageStore = images
	}
	recipeService := service.NewRecipeService(db, imageStore)

	var writeLimiter, interactionLimiter *middleware.RateLimiter
	if redisClient != nil {
		writeLimiter = middleware.NewRecipeWriteLimiter(redisClient)
		interactionLimiter = middleware.NewInteractionLimiter(redisClient)
	}

	v1 := router.Group("/api/v1")
	{
		NewAuthHandler(authService).RegisterRoutes(v1)
		NewRecipeHandler(recipeService, ratingService, images, authService, writeLimiter, interactionLimiter).RegisterRoutes(v1)
		NewHomeHandler(recipeService).RegisterRoutes(v1)
	}
}

// handleServiceError maps the service sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 with the fallback message so internals
// never leak to the client.
func handleServiceError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrCategoryNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidServings),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrUnsupportedImage):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
