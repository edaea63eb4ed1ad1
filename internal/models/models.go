package models

import (
	"time"
)

// Chunk represents one text chunk cut from a document.
type Chunk struct {
	Text       string `json:"text"`
	ChunkIndex int    `json:"chunk_index"`
	StartChar  int    `json:"start_char"`
	EndChar    int    `json:"end_char"`
}

// PageMapEntry associates a 1-based page number with the byte offset at which
// that page's content begins in the concatenated document text. Entries are
// sorted ascending by StartChar.
type PageMapEntry struct {
	Page      int `json:"page"`
	StartChar int `json:"start_char"`
}

// Payload is the metadata stored alongside each vector.
type Payload struct {
	Text       string    `json:"text"`
	Source     string    `json:"source"`
	ChunkIndex int       `json:"chunk_index"`
	Page       *int      `json:"page"`
	CreatedAt  time.Time `json:"created_at"`
}

// Point is the persisted unit in the vector store: a deterministic UUID,
// the embedding, and the chunk payload.
type Point struct {
	ID      string    `json:"id"`
	Vector  []float32 `json:"vector"`
	Payload Payload   `json:"payload"`
}

// SearchResult is one ranked hit returned by the vector store.
type SearchResult struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Payload Payload `json:"payload"`
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	TotalPoints    int `json:"total_points"`
	FilesSucceeded int `json:"files_succeeded"`
	FilesFailed    int `json:"files_failed"`
}

// Answer is the result of a RAG ask: the generated text plus the retrieved
// context chunks it was grounded on.
type Answer struct {
	Answer   string         `json:"answer"`
	Model    string         `json:"model,omitempty"`
	Contexts []SearchResult `json:"contexts"`
}
