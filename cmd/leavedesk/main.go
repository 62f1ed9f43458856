package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/leavedesk/leavedesk/internal/adapters/gateway/rest"
	"github.com/leavedesk/leavedesk/internal/handlers"
	"github.com/leavedesk/leavedesk/internal/middleware"
	"github.com/leavedesk/leavedesk/internal/platform/config"
	"github.com/leavedesk/leavedesk/internal/session"
)

// @title LeaveDesk API
// @version 1.0
// @description Presentation backend for the leave management frontend. All business rules live in the remote leave gateway.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Gateway client forwards the caller's bearer token; session pruning
	// and other background calls fall back to the service token.
	client := rest.NewClient(cfg.GatewayBaseURL, func(ctx context.Context) (string, error) {
		if token, ok := middleware.GetBearerTokenFromCtx(ctx); ok {
			return token, nil
		}
		return cfg.GatewayServiceToken, nil
	}, cfg.GatewayTimeout, logger)
	gateway := rest.NewGateway(client)

	sessions := session.NewManager(gateway, logger)
	go sessions.RunPruner(context.Background(), cfg.SessionPruneInterval, cfg.SessionIdleTimeout)

	rate, err := limiter.NewRateFromFormatted(cfg.CommandRateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimit := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLogging(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, sessions, rateLimit)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
