package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// AnythingLLM connection
	AnythingLLMURL    string
	AnythingLLMAPIKey string

	// Auth for mutating room endpoints; empty disables auth.
	APIKey string

	// Content fallback for generation without a room or custom text.
	FallbackContentPath string

	// Upload limit for generate-from-document.
	MaxUploadBytes int64

	// AI call budget and stats retention.
	LLMTimeout  time.Duration
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8001"),

		AnythingLLMURL:    envOr("ANYTHINGLLM_BASE_URL", "http://localhost:3001"),
		AnythingLLMAPIKey: os.Getenv("ANYTHINGLLM_API_KEY"),

		APIKey: os.Getenv("MINDBUDDY_API_KEY"),

		FallbackContentPath: envOr("FALLBACK_CONTENT_PATH", "frontend/public/AIresult.txt"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		LLMTimeout:  envDuration("LLM_TIMEOUT", 120*time.Second),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 120 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AnythingLLMURL == "" {
		return fmt.Errorf("ANYTHINGLLM_BASE_URL is required")
	}
	if c.AnythingLLMAPIKey == "" {
		return fmt.Errorf("ANYTHINGLLM_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
