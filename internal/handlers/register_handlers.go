package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/carbonx_exchange/cmd/docs"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/SscSPs/carbonx_exchange/internal/platform/config"
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
) error {
	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	tradeLimiter, err := middleware.NewMemoryLimiter(cfg.TradeRateLimit)
	if err != nil {
		return fmt.Errorf("invalid TRADE_RATE_LIMIT: %w", err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Public routes
	registerAuthRoutes(r, cfg, services.Company, middleware.RateLimit(loginLimiter))
	registerStreamRoutes(r, services.Notifier, cfg.CORSAllowedOrigins)

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(tradeLimiter))

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	tradeLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerCompanyRoutes(v1, service.Company, service.Listing)
	registerListingRoutes(v1, service.Listing)
	registerTradeRoutes(v1, service.Trade, tradeLimit)
	registerWalletRoutes(v1, service.Wallet)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
