// Package embeddings turns text into fixed-length float vectors.
package embeddings

import (
	"context"
	"fmt"

	"github.com/mindfulorg/smartfs/internal/config"
)

// Provider embeds text into a fixed-length float vector.
//
// Implementations must be deterministic for the same input text and model
// for the lifetime of the process, and must accept empty input.
type Provider interface {
	ModelID() string
	Dim() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// New returns the provider selected by cfg.
func New(cfg config.EmbeddingsConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocal(cfg.Dim), nil
	case "openai":
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported embeddings provider: %s", cfg.Provider)
	}
}
