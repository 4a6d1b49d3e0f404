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

	"shopchat-backend/internal/config"
	"shopchat-backend/internal/database"
	"shopchat-backend/internal/handlers"
	"shopchat-backend/internal/router"
	"shopchat-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting ShopChat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Printf("✓ Environment variables loaded (provider=%s, key=%s)", cfg.Provider, services.MaskKey(cfg.APIKey))

	// ──── Step 2: Initialize Completion Service ────
	var completer services.Completer
	switch cfg.Provider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiService(cfg.APIKey, cfg.Model, cfg.UpstreamTimeout)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		completer = gemini
	default:
		completer = services.NewOpenRouterService(services.OpenRouterOptions{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.OpenRouterBaseURL,
			Model:    cfg.Model,
			AppURL:   cfg.AppURL,
			AppTitle: cfg.AppTitle,
			Timeout:  cfg.UpstreamTimeout,
		})
	}
	log.Printf("✓ %s completion client initialized (model=%s, timeout=%s)", completer.Name(), cfg.Model, cfg.UpstreamTimeout)

	// ──── Step 3: Initialize Chat Event Publisher (optional) ────
	var events services.EventPublisher = services.NoopEventPublisher{}
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		events = services.NewRedisEventPublisher(redisClient)
		log.Printf("✓ Redis connected, publishing chat events on %q", services.ChatEventsChannel)
	}

	// ──── Step 4: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(completer, events)
	r := router.New(chatHandler, completer.Name())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 5*time.Second,
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

	log.Printf("✓ ShopChat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: http://localhost:%s/api/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
