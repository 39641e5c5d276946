package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	UploadsBaseURL string
	SessionDSN     string
	ChatPollEvery  time.Duration
	HTTPTimeout    time.Duration
	Environment    string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables win either way.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env file")
	}

	cfg := &Config{
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		UploadsBaseURL: os.Getenv("UPLOADS_BASE_URL"),
		SessionDSN:     os.Getenv("SESSION_DSN"),
		Environment:    os.Getenv("ENV"),
		ChatPollEvery:  5 * time.Second,
		HTTPTimeout:    15 * time.Second,
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080/api"
	}
	if cfg.UploadsBaseURL == "" {
		cfg.UploadsBaseURL = "http://localhost:8080/uploads"
	}
	if cfg.SessionDSN == "" {
		cfg.SessionDSN = "tourdesk_session.db"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if v := os.Getenv("CHAT_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAT_POLL_INTERVAL %q: %w", v, err)
		}
		cfg.ChatPollEvery = d
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}
