package embedding

import (
	"context"
	"hash/fnv"
	"strings"
)

// HashingProvider is an offline provider for development and tests. Each token
// is hashed into a bucket, so texts sharing words land close together.
type HashingProvider struct {
	dimensions int
}

func NewHashingProvider(dimensions int) *HashingProvider {
	return &HashingProvider{dimensions: dimensions}
}

func (p *HashingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.dimensions <= 0 {
		return nil, ErrEmptyEmbedding
	}
	vec := make([]float32, p.dimensions)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum32()%uint32(p.dimensions)] += 1
	}
	// Empty input would give a zero vector, which has no direction.
	if strings.TrimSpace(text) == "" {
		vec[0] = 1
	}
	return normalizeVector(vec), nil
}
