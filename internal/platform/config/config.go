package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// JWTSecret verifies the browser's bearer tokens. Tokens are issued
	// by the identity provider, not by this service.
	JWTSecret string
	JWTIssuer string

	// Gateway is the remote leave backend every business operation is
	// delegated to.
	GatewayBaseURL      string
	GatewayServiceToken string
	GatewayTimeout      time.Duration

	// Page sessions are pruned after sitting idle.
	SessionIdleTimeout   time.Duration
	SessionPruneInterval time.Duration

	// Rate limit applied to command endpoints, in limiter format
	// (e.g. "30-M" for 30 per minute).
	CommandRateLimit string

	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "leavedesk")
	viper.SetDefault("GATEWAY_BASE_URL", "http://localhost:9090")
	viper.SetDefault("GATEWAY_SERVICE_TOKEN", "")
	viper.SetDefault("GATEWAY_TIMEOUT", "15s")
	viper.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	viper.SetDefault("SESSION_PRUNE_INTERVAL", "5m")
	viper.SetDefault("COMMAND_RATE_LIMIT", "30-M")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GatewayBaseURL = viper.GetString("GATEWAY_BASE_URL")
	if cfg.GatewayBaseURL == "" {
		log.Println("Warning: GATEWAY_BASE_URL environment variable not set.")
	}
	cfg.GatewayServiceToken = viper.GetString("GATEWAY_SERVICE_TOKEN")

	gatewayTimeoutStr := viper.GetString("GATEWAY_TIMEOUT")
	gatewayTimeout, err := time.ParseDuration(gatewayTimeoutStr)
	if err != nil {
		gatewayTimeout = 15 * time.Second
		log.Printf("Warning: Invalid value for GATEWAY_TIMEOUT ('%s'). Defaulting to %s.\n", gatewayTimeoutStr, gatewayTimeout)
	}
	cfg.GatewayTimeout = gatewayTimeout

	idleStr := viper.GetString("SESSION_IDLE_TIMEOUT")
	idle, err := time.ParseDuration(idleStr)
	if err != nil {
		idle = 30 * time.Minute
		log.Printf("Warning: Invalid value for SESSION_IDLE_TIMEOUT ('%s'). Defaulting to %s.\n", idleStr, idle)
	}
	cfg.SessionIdleTimeout = idle

	pruneStr := viper.GetString("SESSION_PRUNE_INTERVAL")
	prune, err := time.ParseDuration(pruneStr)
	if err != nil {
		prune = 5 * time.Minute
		log.Printf("Warning: Invalid value for SESSION_PRUNE_INTERVAL ('%s'). Defaulting to %s.\n", pruneStr, prune)
	}
	cfg.SessionPruneInterval = prune

	cfg.CommandRateLimit = viper.GetString("COMMAND_RATE_LIMIT")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
