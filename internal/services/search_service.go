package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/markdave123-py/VectorVault/internal/core"
	"github.com/markdave123-py/VectorVault/internal/models"
)

// MaxTopK caps how many results a single query may request.
const MaxTopK = 20

type SearchService struct {
	store       core.VectorStore
	embedder    core.EmbeddingProvider
	defaultTopK int
}

func NewSearchService(store core.VectorStore, embedder core.EmbeddingProvider, defaultTopK int) *SearchService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &SearchService{store: store, embedder: embedder, defaultTopK: defaultTopK}
}

// Search embeds the query and returns the most similar chunks, best first.
// topK <= 0 falls back to the configured default; values above MaxTopK are
// clamped.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.store.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return results, nil
}
