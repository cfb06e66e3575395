package config

import (
	"fmt"
	"os"
)

// Config holds the runtime settings for the relay backend.
// Values come from the environment; every field has a development default
// so the service starts against a local docker-compose stack.
type Config struct {
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HTTPAddr      string
	JWTSecret     string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		DatabaseDSN:   databaseDSN(),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       0,
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
	}
}

func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "user"),
		getenv("DB_PASSWORD", "password"),
		getenv("DB_NAME", "speakupdb"),
		getenv("DB_PORT", "5432"),
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
