package main

import (
	"context"
	"os"
	"strconv"

	"rasosehat-backend/internal/database"
	"rasosehat-backend/internal/handler"
	"rasosehat-backend/internal/hydrate"
	"rasosehat-backend/internal/middleware"
	"rasosehat-backend/internal/repository"
	"rasosehat-backend/internal/service"
	"rasosehat-backend/internal/websocket"
	"rasosehat-backend/pkg/cache"
	"rasosehat-backend/pkg/mailer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           RasoSehat API
// @version         1.0
// @description     Marketplace backend for healthy-food restaurants: seller onboarding, menu catalog and admin verification.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		logrus.Info("no configs/.env file found, relying on process env")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "postgres://" + envOr("DB_USER", "postgres") +
			":" + envOr("DB_PASSWORD", "postgres") +
			"@" + envOr("DB_HOST", "localhost") +
			":" + envOr("DB_PORT", "5432") +
			"/" + envOr("DB_NAME", "rasosehat") +
			"?sslmode=" + envOr("DB_SSLMODE", "disable")
	}

	db, err := database.NewConnection(dsn)
	if err != nil {
		logrus.Fatalf("database connection failed: %v", err)
	}
	logrus.Info("connected to PostgreSQL")

	// Realtime notification hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Cache backend: Redis when configured, in-process otherwise
	var cacheStore cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
		redisCache, err := cache.NewRedis(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		if err != nil {
			logrus.Fatalf("redis connection failed: %v", err)
		}
		cacheStore = redisCache
		logrus.WithField("addr", addr).Info("using redis cache")
	} else {
		cacheStore = cache.NewMemory()
		logrus.Info("using in-memory cache")
	}

	// Outbound mail is optional; decisions are still recorded without it
	var mail mailer.Mailer
	if host := os.Getenv("SMTP_HOST"); host != "" {
		smtpPort, _ := strconv.Atoi(envOr("SMTP_PORT", "587"))
		mail = mailer.NewSMTP(host, smtpPort, envOr("SMTP_SENDER", "no-reply@rasosehat.id"), os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	}

	hydrator := hydrate.Config{
		StorageOrigin: os.Getenv("STORAGE_ORIGIN"),
		Bucket:        envOr("STORAGE_BUCKET", "foto"),
	}

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	pivotService := service.NewPivotService(referenceRepo, repository.NewTransactionManager(db))
	restaurantService := service.NewRestaurantService(restaurantRepo, verificationRepo, hydrator)
	menuService := service.NewMenuService(menuRepo, restaurantRepo, categoryRepo, pivotService, cacheStore, hydrator)
	reviewService := service.NewReviewService(reviewRepo, menuRepo, restaurantRepo, notificationService, cacheStore)
	verificationService := service.NewVerificationService(
		restaurantRepo, menuRepo, userRepo, verificationRepo,
		notificationService, mail, cacheStore, hydrator,
	)

	authHandler := handler.NewAuthHandler(userService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	menuHandler := handler.NewMenuHandler(menuService, pivotService)
	reviewHandler := handler.NewReviewHandler(reviewService, menuService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	authHandler.RegisterRoutes(router.Group(""))
	restaurantHandler.RegisterRoutes(router.Group(""))
	menuHandler.RegisterRoutes(router.Group(""))
	reviewHandler.RegisterRoutes(router.Group(""))
	verificationHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")
	logrus.Infof("server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}
