package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/leavedesk/leavedesk/cmd/docs"
	"github.com/leavedesk/leavedesk/internal/middleware"
	"github.com/leavedesk/leavedesk/internal/platform/config"
	"github.com/leavedesk/leavedesk/internal/session"
)

// RegisterRoutes sets up all application routes. Every view endpoint lives
// under an authenticated per-session group; command endpoints additionally
// sit behind the rate limiter.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	sessions *session.Manager,
	rateLimit gin.HandlerFunc,
) {
	// Health check for load balancers and probes
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, sessions, rateLimit)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-view route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	sessions *session.Manager,
	rateLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", middleware.Auth(cfg.JWTSecret))

	sess := registerSessionRoutes(v1, sessions)

	registerMyRequestRoutes(sess, sessions, rateLimit)
	registerTeamRequestRoutes(sess, sessions, rateLimit)
	registerTreatedLogRoutes(sess, sessions)
	registerCalendarRoutes(sess, sessions)
	registerDetailRoutes(sess, sessions, rateLimit)
	registerEditorRoutes(sess, sessions, rateLimit)
	registerDashboardRoutes(sess, sessions)
	registerBalanceRoutes(sess, sessions, rateLimit)
	registerHistoryRoutes(sess, sessions)
	registerHolidayRoutes(sess, sessions, rateLimit)
	registerAbsenceRoutes(sess, sessions)
	registerPolicyRoutes(sess, sessions, rateLimit)
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
