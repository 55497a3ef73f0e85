package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jobcraft")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("PORT", "")
	t.Setenv("QDRANT_URL", "")
	t.Setenv("QDRANT_API_KEY", "")
	t.Setenv("EMBEDDING_DIM", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 768, cfg.EmbeddingDim)
	assert.Equal(t, "http://localhost:6333", cfg.QdrantURL)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("EMBEDDING_DIM", "1536")
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 1536, cfg.EmbeddingDim)
	assert.Equal(t, "http://qdrant:6333", cfg.QdrantURL)
	assert.Equal(t, 48, cfg.JWT.ExpirationHours)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingGeminiKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{
		DatabaseURL:  "postgres://localhost/db",
		GeminiAPIKey: "key",
		Port:         70000,
		EmbeddingDim: 768,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestValidate_EmbeddingDim(t *testing.T) {
	cfg := &Config{
		DatabaseURL:  "postgres://localhost/db",
		GeminiAPIKey: "key",
		Port:         8080,
		EmbeddingDim: 0,
	}

	err := cfg.Validate()
	assert.Error(t, err)
}
