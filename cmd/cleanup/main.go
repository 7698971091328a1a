package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ecolink-tn/ecolink-api/internal/db"
	"github.com/ecolink-tn/ecolink-api/internal/problem"
)

func main() {
	log.Println("Problem Cleanup Job - Starting")
	log.Println("Retention Policy: 180 days for cancelled reports")

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Create cleanup service
	cleanupService := problem.NewCleanupService(database)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Check how many reports are eligible for cleanup
	count, err := cleanupService.GetExpiredProblemsCount(ctx)
	if err != nil {
		log.Fatalf("Failed to get expired problems count: %v", err)
	}

	log.Printf("Found %d cancelled reports eligible for permanent deletion", count)

	if count == 0 {
		log.Println("No cleanup needed. Exiting.")
		os.Exit(0)
	}

	// Perform cleanup
	deletedCount, err := cleanupService.CleanupExpiredProblems(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("✓ Cleanup completed successfully: %d reports permanently deleted", deletedCount)
	log.Println("Cleanup Job - Finished")
}
