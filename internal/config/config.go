package config

import (
	"fmt"
	"os"
)

// Config carries everything the api binary reads from the environment.
// DATABASE_URL selects the Postgres backend; when it is empty the flat-file
// backend under DataDir is used instead. The choice is made once at startup.
type Config struct {
	Port             string
	DatabaseURL      string
	DataDir          string
	JWTSecret        string
	TelegramBotToken string

	// Seed credentials for the initial super-admin account. Only applied
	// when the user collection is empty and AdminPassword is set.
	AdminUsername string
	AdminPassword string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getenv("APP_PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataDir:          getenv("DATA_DIR", "data"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminUsername:    getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
