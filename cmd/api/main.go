package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simmerhub/backend/config"
	"github.com/simmerhub/backend/internal/database"
	"github.com/simmerhub/backend/internal/server"
	"github.com/simmerhub/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Rate limiting is optional; the API runs unlimited without redis.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	// Image storage is optional as well; uploads return 503 without it.
	var images *service.ImageService
	if s3cfg, err := config.NewS3Config(context.Background(), cfg); err != nil {
		log.Printf("Warning: S3 unavailable, image uploads disabled: %v", err)
	} else {
		images = service.NewImageService(s3cfg)
	}

	srv := server.New(cfg, db, redisClient, images)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
