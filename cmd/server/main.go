package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduhire/eduhire-api/adapters/event"
	httpAdapter "github.com/eduhire/eduhire-api/adapters/http"
	"github.com/eduhire/eduhire-api/adapters/persistence"
	authUC "github.com/eduhire/eduhire-api/internal/application/usecase/auth"
	profileUC "github.com/eduhire/eduhire-api/internal/application/usecase/profile"
	"github.com/eduhire/eduhire-api/internal/config"
	"github.com/eduhire/eduhire-api/pkg/auth"
	"github.com/eduhire/eduhire-api/pkg/logger"
	"github.com/eduhire/eduhire-api/pkg/tracing"
)

func main() {
	fmt.Println("Start EduHire API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "eduhire-api")
	if err != nil {
		log.Fatalf("FATAL: cannot init tracer provider: %v", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			appLogger.Error("failed to shut down tracer provider", err)
		}
	}()

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	userCache := persistence.NewRedisUserCache(redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, kafkaClient, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	socialAuthUseCase := authUC.NewSocialAuthUseCase(userRepo, jwtSvc, kafkaClient, appLogger)
	currentUserUseCase := authUC.NewCurrentUserUseCase(userRepo, userCache, appLogger)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(userRepo, userCache, kafkaClient, appLogger)
	publicProfileUseCase := profileUC.NewPublicProfileUseCase(userRepo, kafkaClient, appLogger)
	activityUseCase := profileUC.NewActivityUseCase(userRepo)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(
		registerUseCase,
		loginUseCase,
		socialAuthUseCase,
		currentUserUseCase,
		appLogger,
	)
	profileHandler := httpAdapter.NewProfileHandler(
		updateProfileUseCase,
		publicProfileUseCase,
		activityUseCase,
		appLogger,
	)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc, appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/social/:provider", authHandler.SocialAuth)

			authPrivate := authRoutes.Group("/")
			authPrivate.Use(authMiddleware)
			{
				authPrivate.GET("/me", authHandler.Me)
				authPrivate.PUT("/profile", profileHandler.UpdateProfile)
				authPrivate.GET("/activity", profileHandler.GetActivity)
			}
		}

		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/users/:id/profile", profileHandler.GetPublicProfile)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
