package core

import "context"

// EmbeddingProvider converts text into fixed-length float vectors.
// Implementations must be deterministic for identical input and model.
type EmbeddingProvider interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
