package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Embedding EmbeddingConfig
	Events    EventsConfig
	Query     QueryConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Environment        string
	Port               string
	LogFilePath        string
	LogLevel           string
	RedisURL           string
	CorsAllowedOrigins string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Driver      string // "postgres" or "memory"
	Connection  string
	LogLevel    string // "silent", "error", "warn", "info"
	AutoMigrate bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type EmbeddingConfig struct {
	Provider      string // "openai", "jina", "ollama", "gemini" or "dummy"
	Model         string
	Dimensions    int
	OpenAIKey     string
	JinaKey       string
	OllamaBaseURL string
	GeminiKey     string
	Cache         string // "none", "memory" or "redis"
	CacheTTL      time.Duration
}

type EventsConfig struct {
	Driver  string // "none", "gochannel" or "nats"
	NatsURL string
}

type QueryConfig struct {
	DefaultTopK int
	MaxTopK     int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
	Environment string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment:        getEnv("GO_ENV", "development"),
			Port:               getEnv("APP_PORT", "8000"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/memory.log"),
			LogLevel:           getEnv("LOG_LEVEL", "debug"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("STORE_DRIVER", "postgres"),
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate: getEnv("DB_AUTO_MIGRATE", "true") == "true",

			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Embedding: EmbeddingConfig{
			Provider:      getEnv("EMBEDDING_PROVIDER", "openai"),
			Model:         getEnv("EMBEDDING_MODEL", ""),
			Dimensions:    getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			JinaKey:       getEnv("JINA_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiKey:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Cache:         getEnv("EMBEDDING_CACHE", "none"),
			CacheTTL:      getEnvAsDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),
		},
		Events: EventsConfig{
			Driver:  getEnv("EVENTS_DRIVER", "none"),
			NatsURL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Query: QueryConfig{
			DefaultTopK: getEnvAsInt("QUERY_DEFAULT_TOP_K", 5),
			MaxTopK:     getEnvAsInt("QUERY_MAX_TOP_K", 50),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
			Environment: getEnv("GO_ENV", "development"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
