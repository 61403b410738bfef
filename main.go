package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentnest-server/internal/config"
	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/observability"
	"rentnest-server/internal/routes"
	"rentnest-server/internal/views"
)

func main() {
	// Load environment variables; a missing .env is fine in deployed envs.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := observability.NewLogger(cfg.Environment)

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to database")
	}

	registry := observability.InitRegistry()

	// Anonymous view dedup lives in Redis so every app process behind the
	// load balancer shares the same 24h window.
	dedupStore := views.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	recorder := views.NewRecorder(db, dedupStore, logger)

	notifier := &notify.LogNotifier{Log: logger}
	email := &notify.LogEmailSender{Log: logger}
	whatsapp := &notify.LogWhatsAppSender{Log: logger}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      logger,
		Notifier: notifier,
		Email:    email,
		WhatsApp: whatsapp,
		Views:    recorder,
		Registry: registry,
	})

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", serverAddr).Msg("server starting")
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
