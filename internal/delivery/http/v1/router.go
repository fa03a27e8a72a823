package v1

import (
	"time"

	"placementhub-backend/config"
	"placementhub-backend/internal/delivery/http/middleware"
	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	StudentUC     domain.StudentUsecase
	DriveUC       domain.DriveUsecase
	ApplicationUC domain.ApplicationUsecase
	ScoringUC     domain.ScoringUsecase
	PrepUC        domain.PrepUsecase
	AnalyticsUC   domain.AnalyticsUsecase
	Health        HealthChecker
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	RegisterBindingValidators()

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(append([]string{cfg.FrontendURL}, cfg.AllowedOrigins...))) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.Health)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg, deps.AuthUC))
	{
		NewScoringHandler(v1, protected, deps.ScoringUC)
		NewAuthHandler(protected, deps.AuthUC)
		NewStudentHandler(protected, deps.StudentUC, deps.ApplicationUC, deps.ScoringUC)
		NewDriveHandler(protected, deps.DriveUC, deps.ApplicationUC)
		NewAdminHandler(protected, deps.ApplicationUC, deps.AnalyticsUC, deps.AuthUC)
		NewPrepHandler(protected, deps.PrepUC, middleware.AIRateLimitConfig(cfg.RateLimitAIThreshold, window))
	}

	return r
}
