package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Stock event publishing (optional; disabled when no brokers are set)
	KafkaBrokers     string
	StockEventsTopic string

	// Reporting
	LowStockThreshold int64

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "minimarket-pos")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("STOCK_EVENTS_TOPIC", "stock-events")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 5)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Access tokens cover a shift; e.g. "12h"
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.KafkaBrokers = viper.GetString("KAFKA_BROKERS")
	cfg.StockEventsTopic = viper.GetString("STOCK_EVENTS_TOPIC")
	if cfg.KafkaBrokers == "" {
		log.Println("Warning: KAFKA_BROKERS not set. Stock event publishing is disabled.")
	}

	cfg.LowStockThreshold = viper.GetInt64("LOW_STOCK_THRESHOLD")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
