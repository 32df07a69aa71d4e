package main

import (
	"fmt"
	"log"
	"net/http"

	"tableserve/internal/config"
	"tableserve/internal/handlers"
	"tableserve/internal/middleware"
	"tableserve/internal/repositories/mongodb"
	"tableserve/internal/scheduler"
	"tableserve/internal/services"
	"tableserve/internal/validators"
	"tableserve/pkg/cache"
	"tableserve/pkg/database"
	"tableserve/pkg/logger"
	"tableserve/pkg/websocket"
	"tableserve/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Database
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis cache; campaign listing degrades gracefully without it
	var campaignCache mongodb.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, campaign caching disabled")
	} else {
		campaignCache = redisCache
		defer redisCache.Close()
	}

	location := cfg.App.Location()

	// Repositories
	campaignRepo := mongodb.NewCampaignRepository(db.Database, campaignCache, cfg.Promotion.CampaignCacheTTL)
	couponRepo := mongodb.NewCouponRepository(db.Database)
	orderRepo := mongodb.NewOrderRepository(db.Database)
	productRepo := mongodb.NewProductRepository(db.Database)

	// WebSocket hub for kitchen boards
	wsHandler := websocket.NewHandler()

	// Services
	campaignValidator := validators.NewCampaignValidator(cfg.Promotion.MinValidityDays, cfg.Promotion.MaxValidityDays)
	orderValidator := validators.NewOrderValidator()

	campaignService := services.NewCampaignService(campaignRepo, campaignValidator, appLogger)
	couponService := services.NewCouponService(campaignRepo, couponRepo, cfg.Promotion, location, appLogger)
	orderService := services.NewOrderService(orderRepo, couponRepo, productRepo, db, wsHandler, orderValidator, cfg.Promotion, appLogger)
	menuService := services.NewMenuService(productRepo, campaignRepo)

	// Expiry sweep
	couponScheduler, err := scheduler.New(location, couponRepo, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	couponScheduler.Start()
	defer couponScheduler.Stop()

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	couponHandler := handlers.NewCouponHandler(couponService)
	orderHandler := handlers.NewOrderHandler(orderService)
	menuHandler := handlers.NewMenuHandler(menuService)

	// Initialize Gin router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupCampaignRoutes(v1, campaignHandler)
		routes.SetupCouponRoutes(v1, couponHandler)
		routes.SetupOrderRoutes(v1, orderHandler, wsHandler)
		routes.SetupMenuRoutes(v1, menuHandler)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
