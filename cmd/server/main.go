package main

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/pawgrounds/backend/internal/jobs"
	"github.com/pawgrounds/backend/internal/router"
	"github.com/pawgrounds/backend/pkg/config"
	"github.com/pawgrounds/backend/pkg/firebase"
	"github.com/pawgrounds/backend/pkg/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase is optional; JWT auth works without it
	var firebaseAuth *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuth = firebaseApp.AuthClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	notificationService := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuth)

	// Background notification retention
	retentionJob := jobs.NewNotificationRetentionJob(
		notificationService,
		time.Duration(cfg.NotificationCleanupInterval)*time.Minute,
	)
	retentionJob.Start()
	defer retentionJob.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
