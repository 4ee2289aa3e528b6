package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"movie-bot/config"
	_ "movie-bot/docs" // Swagger docs
	chatHTTP "movie-bot/internal/chat/delivery/http"
	"movie-bot/internal/bootstrap"
	"movie-bot/internal/httpserver"
	"movie-bot/pkg/log"
)

// @title       MOVIE BOT API
// @description Movie recommendations for the actor you name, backed by TMDb and a chat model.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Credentials must be present before anything is served
	if err := cfg.Validate(); err != nil {
		logger.Fatalf(ctx, "Invalid configuration: %v", err)
	}

	logger.Info(ctx, "Starting MOVIE BOT...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 4. Chat domain
	chatUC, err := bootstrap.NewChatUseCase(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize chat: %v", err)
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHTTP.New(logger, chatUC),
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize HTTP server: %v", err)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
