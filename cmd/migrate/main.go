package main

import (
	"log"

	"github.com/simmerhub/backend/config"
	"github.com/simmerhub/backend/internal/database"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := database.SeedCategories(db); err != nil {
		log.Fatalf("Category seeding failed: %v", err)
	}

	log.Println("Migrations applied")
}
