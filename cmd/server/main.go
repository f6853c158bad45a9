package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/linkedin-crm/adapters/event"
	httpAdapter "github.com/khoahotran/linkedin-crm/adapters/http"
	"github.com/khoahotran/linkedin-crm/adapters/persistence"
	profileUC "github.com/khoahotran/linkedin-crm/internal/application/usecase/profile"
	"github.com/khoahotran/linkedin-crm/internal/config"
	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

func main() {
	fmt.Println("Start LinkedIn CRM API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	if err := persistence.EnsureSchema(context.Background(), dbPool); err != nil {
		appLogger.Fatal("cannot apply database schema", err)
	}

	// Redis and Kafka are optional; the core runs without either.
	var detailCache profile.DetailCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		detailCache = persistence.NewRedisDetailCache(redisClient)
	} else {
		appLogger.Warn("Redis not configured, profile detail cache disabled")
	}

	var producer profileUC.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		producer = kafkaClient
	} else {
		appLogger.Warn("Kafka not configured, profile events disabled")
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, detailCache, producer, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	viewsHandler := httpAdapter.NewViewsHandler(profileUseCase, appLogger)
	extensionHandler := httpAdapter.NewExtensionHandler(cfg.Extension.Dir, appLogger)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(httpAdapter.CORSMiddleware())
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	router.LoadHTMLGlob("web/templates/*.html")

	// Server-rendered views
	router.GET("/", viewsHandler.Index)
	router.GET("/profile/:id", viewsHandler.ProfileDetail)
	router.GET("/download-extension", extensionHandler.Download)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "UP"}) })

		api.POST("/save_profile", profileHandler.SaveProfile)
		api.GET("/profiles", profileHandler.ListProfiles)
		api.GET("/profiles/:id", profileHandler.GetProfile)
		api.DELETE("/profiles/:id", profileHandler.DeleteProfile)
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
