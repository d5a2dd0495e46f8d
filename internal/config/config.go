package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	RedisURL    string
	JWTSecret   string
	// JWTTTL of zero issues tokens without an expiry claim.
	JWTTTL      time.Duration
	LogLevel    string
	LogFormat   string
	AutoMigrate bool
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "threads"),
		DBPassword: getEnv("DB_PASSWORD", "threads_dev_password"),
		DBName:     getEnv("DB_NAME", "threads"),
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName))

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	ttl, err := parseTTL(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parsing JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	autoMigrate, err := strconv.ParseBool(getEnv("AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("parsing AUTO_MIGRATE: %w", err)
	}
	cfg.AutoMigrate = autoMigrate

	return cfg, nil
}

func parseTTL(raw string) (time.Duration, error) {
	if raw == "0" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, fmt.Errorf("negative duration %q", raw)
	}
	return ttl, nil
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
