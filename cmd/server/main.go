package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sweetcrumb/cakeshop-backend/config"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/controller"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
	"github.com/sweetcrumb/cakeshop-backend/internal/router"
	"github.com/sweetcrumb/cakeshop-backend/internal/scheduler"
	"github.com/sweetcrumb/cakeshop-backend/internal/storage"
	ws "github.com/sweetcrumb/cakeshop-backend/internal/websocket"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"github.com/sweetcrumb/cakeshop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Sweet Crumb Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed defaults (settings singleton, starter price list)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis backs the settings cache and the token blacklist. The
	// server still works without it, so a failed connection only warns.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, caching and token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	optionRepo := repository.NewCustomizationOptionRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	settingsRepo := repository.NewSettingsRepository(db.GetDB())

	// Order event feed for manager dashboards
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	optionService := service.NewOptionService(optionRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	cartService := service.NewCartService(cartRepo, productRepo, optionRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, settingsService, db.GetDB(), hub)

	imageStorage := storage.NewImageStorage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	optionController := controller.NewOptionController(optionService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	settingsController := controller.NewSettingsController(settingsService)
	uploadController := controller.NewUploadController(imageStorage)
	eventsController := controller.NewEventsController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Nightly purge of abandoned carts
	cartScheduler := scheduler.NewCartScheduler(cartService, cfg.Cart.StaleAfter)
	if err := cartScheduler.Start(); err != nil {
		logger.Error("Failed to start cart scheduler", err)
	}
	defer cartScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		optionController,
		cartController,
		orderController,
		settingsController,
		uploadController,
		eventsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
