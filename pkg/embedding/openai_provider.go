package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const jinaBaseURL = "https://api.jina.ai/v1"

// OpenAIProvider calls any OpenAI-compatible /embeddings endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

// NewJinaProvider uses Jina's OpenAI-compatible API.
func NewJinaProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "jina-embeddings-v2-base-en"
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = jinaBaseURL
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: model}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return resp.Data[0].Embedding, nil
}
