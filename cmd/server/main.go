// Command main is the entry point for the Quill backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/observability"
	"quill/internal/server"
	"quill/internal/store"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "quill-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.SamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Connect to the document store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}

	// Redis is optional; the server degrades to store-only reads without it
	cache.InitRedis(cfg.RedisURL)

	// Create server with dependency injection
	srv := server.NewServer(cfg, st)

	app := fiber.New(fiber.Config{
		AppName:   "Quill API",
		BodyLimit: 1 * 1024 * 1024,
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
