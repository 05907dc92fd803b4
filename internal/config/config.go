package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	JWTSecret      string
	HTTPAddr       string
	Environment    string
	MigrationsPath string

	// First-start admin account; creation is skipped when the password
	// is empty or the username already exists.
	AdminUsername string
	AdminPassword string

	// Optional Telegram notifier; disabled when the token is empty.
	TelegramToken string
	AdminChatID   int64
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables win either way
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	if chatID := os.Getenv("ADMIN_CHAT_ID"); chatID != "" {
		if _, err := fmt.Sscan(chatID, &cfg.AdminChatID); err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID must be numeric: %w", err)
		}
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
