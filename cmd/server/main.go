package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashdeck-backend/internal/config"
	"flashdeck-backend/internal/database"
	"flashdeck-backend/internal/handlers"
	"flashdeck-backend/internal/repository"
	"flashdeck-backend/internal/router"
	"flashdeck-backend/internal/services"
)

func main() {
	log.Println("Starting Flashdeck Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	flashcardRepo := repository.NewFlashcardRepo(pool)
	sessionRepo := repository.NewSessionRepo(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)
	archiveRepo := repository.NewSessionArchiveRepo(pool)

	// ──── Initialize Services ────
	flashcardService := services.NewFlashcardService(flashcardRepo)
	studyService := services.NewStudyService(flashcardRepo, sessionRepo, archiveRepo)

	// ──── Initialize Handlers ────
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
	studyHandler := handlers.NewStudyHandler(studyService)
	healthHandler := handlers.NewHealthHandler(flashcardService, sessionRepo)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(flashcardHandler, studyHandler, healthHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Flashdeck Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
