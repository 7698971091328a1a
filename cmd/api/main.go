package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ecolink-tn/ecolink-api/internal/auth"
	"github.com/ecolink-tn/ecolink-api/internal/db"
	ecohttp "github.com/ecolink-tn/ecolink-api/internal/http"
	"github.com/ecolink-tn/ecolink-api/internal/messaging"
	"github.com/ecolink-tn/ecolink-api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Initialize telemetry (tracing + metrics). The service keeps running
	// without a collector, exports just fail quietly.
	telemetryProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("[ERROR] Failed to initialize telemetry: %v", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
				log.Printf("[ERROR] Failed to shut down telemetry: %v", err)
			}
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("[ERROR] Failed to initialize metrics: %v", err)
	}

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	log.Println("✓ Connected to database")

	// Connect to RabbitMQ for domain events
	var publisher messaging.PublisherInterface
	rabbitPublisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("[ERROR] Failed to connect to RabbitMQ, events disabled: %v", err)
		publisher = messaging.NoopPublisher{}
	} else {
		publisher = rabbitPublisher
		defer rabbitPublisher.Close()
		log.Println("✓ Connected to RabbitMQ")
	}

	// Set up token verification against the identity provider's JWKS
	authCfg := auth.LoadConfig()
	jwks, err := auth.NewJWKS(authCfg.JWKSURL, 15*time.Minute)
	if err != nil {
		log.Fatalf("Failed to fetch JWKS from %s: %v", authCfg.JWKSURL, err)
	}
	defer jwks.Close()
	verifier := auth.NewVerifier(authCfg, jwks)

	perms, err := auth.LoadPermissions("permissions.yml")
	if err != nil {
		log.Fatalf("Failed to load permissions: %v", err)
	}

	router := ecohttp.SetupRouter(database, publisher, verifier, perms, metrics)
	handler := ecohttp.CORSMiddleware(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("ecolink-api listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
