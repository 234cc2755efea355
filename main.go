package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rosa-lindqvist/jeweller-journal-api/config"
	"github.com/rosa-lindqvist/jeweller-journal-api/controllers"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Jeweller Journal API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database and create the schema
	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Pick the storage backend for attachment bytes
	var storage services.Storage
	if cfg.UseS3() {
		storage, err = services.NewS3Storage(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		log.Printf("Attachment storage: s3 bucket %s", cfg.AWSS3Bucket)
	} else {
		storage, err = services.NewLocalStorage(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		log.Printf("Attachment storage: local directory %s", cfg.DataDir)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	controllers.RegisterRoutes(router, db, storage)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
