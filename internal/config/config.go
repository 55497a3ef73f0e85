// Package config provides environment-based configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the full server configuration loaded from environment variables.
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string

	// Vector index settings
	QdrantURL    string
	QdrantAPIKey string
	EmbeddingDim int

	JWT JWTConfig
}

// Load reads configuration from environment variables.
// DATABASE_URL and GEMINI_API_KEY are required; everything else has defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		QdrantURL:    os.Getenv("QDRANT_URL"),
		QdrantAPIKey: os.Getenv("QDRANT_API_KEY"),
		EmbeddingDim: 768,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if dimStr := os.Getenv("EMBEDDING_DIM"); dimStr != "" {
		dim, err := strconv.Atoi(dimStr)
		if err != nil {
			return nil, fmt.Errorf("invalid EMBEDDING_DIM %q: %w", dimStr, err)
		}
		cfg.EmbeddingDim = dim
	}

	if cfg.QdrantURL == "" {
		cfg.QdrantURL = "http://localhost:6333"
	}

	jwtCfg, err := NewJWTConfig()
	if err != nil {
		return nil, err
	}
	cfg.JWT = *jwtCfg

	return cfg, cfg.Validate()
}

// Validate checks that required values are present and numeric values are sane.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("config error: embedding dimension must be positive")
	}
	return nil
}
