package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"STORE_DRIVER", "EMBEDDING_PROVIDER", "EMBEDDING_DIMENSIONS", "EMBEDDING_CACHE",
		"EMBEDDING_CACHE_TTL", "EVENTS_DRIVER", "QUERY_DEFAULT_TOP_K", "QUERY_MAX_TOP_K", "OTEL_ENABLED", "OTEL_SAMPLE_RATIO",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	// Empty values are still "set", so string settings come back empty and numeric ones fall back.
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	assert.Equal(t, 24*time.Hour, cfg.Embedding.CacheTTL)
	assert.Equal(t, 5, cfg.Query.DefaultTopK)
	assert.Equal(t, 50, cfg.Query.MaxTopK)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	t.Setenv("EMBEDDING_DIMENSIONS", "768")
	t.Setenv("EMBEDDING_CACHE_TTL", "90m")
	t.Setenv("QUERY_MAX_TOP_K", "20")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.Equal(t, 90*time.Minute, cfg.Embedding.CacheTTL)
	assert.Equal(t, 20, cfg.Query.MaxTopK)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
	assert.Equal(t, "production", cfg.Tracing.Environment)
}

func TestGetEnvAsIntInvalid(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
