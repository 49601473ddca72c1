package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiresHrs  int
	CORSOrigins    string
	AppEnv         string // development | production
	ServiceName    string
	ServiceVersion string
}

func Load() *Config {
	// .env es opcional; en producción todo llega por variables de entorno
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "3001"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=hamburgueseria port=5432 sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiresHrs:  getEnvInt("JWT_EXPIRES_HOURS", 24),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		ServiceName:    "hamburgueseria-backend",
		ServiceVersion: "0.2",
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET no está definido, es obligatorio para producción")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
