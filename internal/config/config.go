package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup
type Config struct {
	Port        string
	Env         string // "development" or "production"
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string

	// Optional shared cache; in-process cache is used when Addr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DashboardCacheTTL time.Duration
}

// Load reads configuration from the environment. A .env file is applied
// when present so local development does not need exported variables.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTIssuer:         getEnv("JWT_ISSUER", "baby-tracker"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           0,
		DashboardCacheTTL: 5 * time.Minute,
	}

	if ttl := os.Getenv("DASHBOARD_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid DASHBOARD_CACHE_TTL: %w", err)
		}
		cfg.DashboardCacheTTL = d
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
