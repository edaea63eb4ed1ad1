// Package qdrant is a minimal REST client for Qdrant, covering the three
// operations the pipeline needs: collection creation, point upserts and
// similarity search.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/markdave123-py/VectorVault/internal/models"
)

type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection with cosine distance. Qdrant
// answers 200 when the collection already exists with the same schema.
func (s *Store) EnsureCollection(ctx context.Context, vectorSize int) error {
	if vectorSize <= 0 {
		return fmt.Errorf("invalid vector size %d", vectorSize)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil)
}

func (s *Store) UpsertBatch(ctx context.Context, points []models.Point) error {
	if len(points) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": payload}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body, nil)
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload models.Payload `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]models.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, models.SearchResult{
			ID:      fmt.Sprintf("%v", r.ID),
			Score:   r.Score,
			Payload: r.Payload,
		})
	}
	return results, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) putJSON(ctx context.Context, url string, body, out any) error {
	return s.doJSON(ctx, http.MethodPut, url, body, out)
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	return s.doJSON(ctx, http.MethodPost, url, body, out)
}

func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal qdrant request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build qdrant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode qdrant response: %w", err)
		}
	}
	return nil
}
