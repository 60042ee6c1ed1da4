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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nexconsult/receitanet-bx/internal/api"
	"github.com/nexconsult/receitanet-bx/internal/bootstrap"
	"github.com/nexconsult/receitanet-bx/internal/config"
	applogger "github.com/nexconsult/receitanet-bx/internal/logger"
	"github.com/nexconsult/receitanet-bx/internal/services"
	"github.com/sirupsen/logrus"

	// Import docs for Swagger
	_ "github.com/nexconsult/receitanet-bx/docs"
)

// @title Receitanet BX Download API
// @version 1.0
// @description Queue SPED file downloads executed by the Receitanet BX desktop bot

// @contact.name API Support
// @contact.url http://www.nexconsult.com/support
// @contact.email support@nexconsult.com

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	now := time.Now()
	logger, logFile, err := applogger.NewWithFile(cfg.Log.Level, cfg.Log.Format, cfg.Log.Path, now)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logFile.Close()
	if _, err := applogger.DeleteOldLogs(logger, cfg.Log.Path, cfg.Log.RetentionDays, now); err != nil {
		log.Printf("Log cleanup failed: %v", err)
	}
	logger.Info("Starting Receitanet BX API Server...")

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	bot, err := bootstrap.NewBot(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize bot: %v", err)
	}

	// Initialize services
	serviceContainer, err := services.NewContainer(cfg, logger, bot)
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}
	defer func() {
		if err := serviceContainer.Close(); err != nil {
			logger.WithError(err).Error("Failed to close services")
		}
	}()

	// Initialize API server
	server := api.NewServer(cfg, logger, serviceContainer)
	defer server.Close()

	// Setup HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
		}).Info("Server starting...")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
