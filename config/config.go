package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDisk = "disk"
	StorageR2   = "r2"

	MaxImageSize = 5 << 20
)

type Config struct {
	Port            string
	Environment     string
	DatabaseURL     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CORSOrigins     []string
	StorageDriver   string
	UploadDir       string
	R2              *R2Config
	MaxImageSize    int64
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine in production.
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "dev")
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		DatabaseURL:     getEnv("DATABASE_URL", databaseURLFromParts()),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StorageDriver:   getEnv("STORAGE_DRIVER", StorageDisk),
		UploadDir:       getEnv("UPLOAD_DIR", "static/uploads"),
		R2:              GetR2Config(),
		MaxImageSize:    MaxImageSize,
	}

	if cfg.JWTSecret == "" {
		if env != "dev" && env != "test" {
			return nil, fmt.Errorf("JWT_SECRET is required in %s", env)
		}
		cfg.JWTSecret = "dev-secret-change-me"
		slog.Warn("JWT_SECRET not set, using development secret")
	}
	if cfg.StorageDriver != StorageDisk && cfg.StorageDriver != StorageR2 {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func databaseURLFromParts() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "blog"),
		getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", defaultValue.String())
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
