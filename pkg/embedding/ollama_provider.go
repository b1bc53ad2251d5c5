package embedding

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaProvider serves local models such as nomic-embed-text.
type OllamaProvider struct {
	client *ollama.Client
	model  string
}

func NewOllamaProvider(baseURL string, model string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama base url: %w", err)
	}
	client := ollama.NewClient(u, &http.Client{Timeout: 60 * time.Second})
	return &OllamaProvider{client: client, model: model}, nil
}

func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := p.client.Embed(ctx, &ollama.EmbedRequest{
		Model: p.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embedding: %w", err)
	}
	if res == nil || len(res.Embeddings) == 0 {
		return nil, ErrEmptyEmbedding
	}

	// Cosine distance is scale-invariant, but unit vectors keep stored values
	// comparable across models.
	return normalizeVector(res.Embeddings[0]), nil
}

// normalizeVector scales vec to unit length. Zero vectors are returned as is.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
