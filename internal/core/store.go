package core

import (
	"context"

	"github.com/markdave123-py/VectorVault/internal/models"
)

// VectorStore abstracts the vector database so higher layers never depend on
// a specific backend (Qdrant, pgvector, ...). The collection name is fixed at
// construction time.
type VectorStore interface {
	// EnsureCollection creates the collection with the given vector size and
	// cosine distance if it does not already exist.
	EnsureCollection(ctx context.Context, vectorSize int) error

	// UpsertBatch writes one batch of points. Point IDs are deterministic, so
	// re-ingesting the same source overwrites rather than duplicates.
	UpsertBatch(ctx context.Context, points []models.Point) error

	// Search returns the topK most similar points, best first.
	Search(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error)

	Close() error
}
