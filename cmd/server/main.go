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

	"go.uber.org/zap"

	"gemini-chat-backend/internal/config"
	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/logger"
	"gemini-chat-backend/internal/router"
	"gemini-chat-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	// ──── Step 2: Initialize Logger ────
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("✗ Logger initialization failed: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("Starting Gemini chat backend", zap.String("env", cfg.Env))

	// ──── Step 3: Initialize Gemini Client ────
	provider, err := services.NewGeminiProvider(context.Background(), services.GeminiOptions{
		APIKey:      cfg.GoogleAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.GeminiTemperature,
	}, zlog)
	if err != nil {
		zlog.Fatal("✗ Gemini client initialization failed", zap.Error(err))
	}
	defer provider.Close()
	zlog.Info("✓ Gemini client initialized", zap.String("model", cfg.GeminiModel))

	// ──── Step 4: Wire Service and Handlers ────
	chatService := services.NewChatService(provider, cfg.GeminiCallTimeout, cfg.ChatRequestTimeout)
	chatHandler := handlers.NewChatHandler(chatService, zlog)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, cfg.AllowedOrigins, zlog)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Leaves room to write the 500 after the chat chain times out
		WriteTimeout: cfg.ChatRequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		zlog.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zlog.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
		close(idle)
	}()

	zlog.Info("✓ Backend ready",
		zap.String("addr", server.Addr),
		zap.String("chat", fmt.Sprintf("http://localhost:%s/api/chat", cfg.Port)),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		zlog.Fatal("Server error", zap.Error(err))
	}
	<-idle
}
