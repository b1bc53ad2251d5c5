package embedding

import (
	"context"
	"fmt"
)

type Config struct {
	Provider      string // openai, jina, ollama, gemini or dummy
	Model         string
	Dimensions    int
	OpenAIKey     string
	JinaKey       string
	OllamaBaseURL string
	GeminiKey     string
}

// New builds the configured provider. Cache wrapping is left to the caller.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("embedding provider openai: OPENAI_API_KEY is not set")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	case "jina":
		if cfg.JinaKey == "" {
			return nil, fmt.Errorf("embedding provider jina: JINA_API_KEY is not set")
		}
		return NewJinaProvider(cfg.JinaKey, cfg.Model), nil
	case "ollama":
		return NewOllamaProvider(cfg.OllamaBaseURL, cfg.Model)
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("embedding provider gemini: GOOGLE_GEMINI_API_KEY is not set")
		}
		return NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
	case "dummy", "hashing":
		return NewHashingProvider(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
