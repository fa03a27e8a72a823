package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placementhub-backend/config"
	_ "placementhub-backend/docs" // Important for Swagger
	v1 "placementhub-backend/internal/delivery/http/v1"
	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/repository/postgres"
	rediscache "placementhub-backend/internal/repository/redis"
	"placementhub-backend/internal/usecase"
	"placementhub-backend/pkg/auth"
	"placementhub-backend/pkg/database"
	"placementhub-backend/pkg/gemini"
	"placementhub-backend/pkg/logger"
	"placementhub-backend/pkg/redis"
	"placementhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           PlacementHub API
// @version         1.0
// @description     Placement scoring, drives, applications and interview prep.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting placementhub backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional: rate limiting falls back to memory, prep is not cached)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Gemini (optional: prep endpoints serve static fallbacks)
	var generator domain.TextGenerator
	if cfg.GeminiAPIKey != "" {
		g, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			logger.Log.Warn("Gemini unavailable", "error", err)
		} else {
			generator = g
		}
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	studentRepo := postgres.NewStudentRepository(dbPool)
	driveRepo := postgres.NewDriveRepository(dbPool)
	shadowRepo := postgres.NewShadowRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	mockRepo := postgres.NewMockInterviewRepository(dbPool)
	analyticsRepo := postgres.NewAnalyticsRepository(dbPool)
	prepCache := rediscache.NewPrepCache(redis.Client())

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(userRepo)
	studentUC := usecase.NewStudentUsecase(studentRepo, validate)
	driveUC := usecase.NewDriveUsecase(driveRepo, shadowRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, driveRepo, studentRepo)
	scoringUC := usecase.NewScoringUsecase(studentRepo, applicationRepo, mockRepo, driveRepo)
	prepUC := usecase.NewPrepUsecase(generator, prepCache, cfg.PrepCacheTTL, mockRepo, studentRepo, driveRepo)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"postgres": dbPool.Ping,
		"redis": func(ctx context.Context) error {
			if redis.Client() == nil {
				return nil // not configured, memory fallback in use
			}
			return redis.HealthCheck(ctx)
		},
	})

	// 8. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.SupabaseUrl != "" {
		jwksProvider = auth.NewProvider(cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json")
	}

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		StudentUC:     studentUC,
		DriveUC:       driveUC,
		ApplicationUC: applicationUC,
		ScoringUC:     scoringUC,
		PrepUC:        prepUC,
		AnalyticsUC:   analyticsUC,
		Health:        healthUC,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
