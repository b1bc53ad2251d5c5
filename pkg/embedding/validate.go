package embedding

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyEmbedding     = errors.New("provider returned no embedding")
	ErrDimensionMismatch  = errors.New("embedding dimension mismatch")
	ErrNonFiniteEmbedding = errors.New("embedding contains NaN or Inf")
)

// Validate checks a provider result before it is stored or searched with.
func Validate(vec []float32, dimensions int) error {
	if len(vec) == 0 {
		return ErrEmptyEmbedding
	}
	if dimensions > 0 && len(vec) != dimensions {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), dimensions)
	}
	for _, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrNonFiniteEmbedding
		}
	}
	return nil
}
