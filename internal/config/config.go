package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppName     string
	Port        string
	Env         string        // development exposes raw error text in 500 responses
	CacheTTL    time.Duration // server-side list cache TTL
	CacheMaxAge int           // Cache-Control max-age in seconds for GET responses
	StaticDir   string        // front-end assets
}

// Load reads .env (if present) and the process environment
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := Config{
		AppName:     getEnv("APP_NAME", "InventoryShop"),
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("APP_ENV", EnvProduction),
		CacheTTL:    5 * time.Minute,
		CacheMaxAge: 300,
		StaticDir:   getEnv("STATIC_DIR", "./frontend"),
	}

	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", raw)
		}
		cfg.CacheTTL = ttl
	}

	if raw := os.Getenv("CACHE_MAX_AGE"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			return Config{}, fmt.Errorf("CACHE_MAX_AGE must be a non-negative integer, got %q", raw)
		}
		cfg.CacheMaxAge = maxAge
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
