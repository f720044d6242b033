package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simmerhub/backend/internal/middleware"
	"github.com/simmerhub/backend/internal/service"
	"github.com/simmerhub/backend/internal/types"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", middleware.RequireAuth(h.auth), h.GetProfile)
		auth.PUT("/profile", middleware.RequireAuth(h.auth), h.UpdateProfile)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, recipes, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"recipes": recipes,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
