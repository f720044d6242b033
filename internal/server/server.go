package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/simmerhub/backend/config"
	"github.com/simmerhub/backend/internal/api"
	"github.com/simmerhub/backend/internal/database"
	"github.com/simmerhub/backend/internal/service"
	"github.com/simmerhub/backend/internal/types"
)

// Server represents the HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New assembles the router with middleware and all API routes.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images *service.ImageService) *Server {
	if err := types.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api.SetupAPI(router, db, cfg.JWTSecret, redisClient, images)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		db: db,
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
