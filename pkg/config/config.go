package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// ReceiptIncludesPrefix controls whether issued receipt numbers carry the
	// branch receipt prefix ("TC06") or are bare ("06").
	ReceiptIncludesPrefix bool

	// RateLimit is a ulule/limiter formatted rate, e.g. "120-M".
	RateLimit string

	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("RECEIPT_INCLUDES_PREFIX", false)
	v.SetDefault("RATE_LIMIT", "120-M")
	v.AutomaticEnv()

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set.")
	}

	var origins []string
	if raw := v.GetString("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		DatabaseURL:           dbURL,
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		JWTSecret:             jwtSecret,
		ReceiptIncludesPrefix: v.GetBool("RECEIPT_INCLUDES_PREFIX"),
		RateLimit:             v.GetString("RATE_LIMIT"),
		AllowedOrigins:        origins,
	}, nil
}
