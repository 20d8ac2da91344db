package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	ServerPort  string
	CORSOrigins string
	JWTSecret   string

	// DBDriver is "none", "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	GenerationDelay time.Duration
	ChatReplyDelay  time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "none")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "aiprofessor"),
		DBPath:      getEnv("DB_PATH", "aiprofessor.db"),
	}

	if cfg.GenerationDelay, err = getDuration("GENERATION_DELAY", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.ChatReplyDelay, err = getDuration("CHAT_REPLY_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "none", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration", key)
	}
	return d, nil
}
