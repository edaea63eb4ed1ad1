package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/VectorVault/internal/models"
)

func TestEnsureCollection(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "documents"})
	require.NoError(t, s.EnsureCollection(context.Background(), 384))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/collections/documents", gotPath)
	vectors := gotBody["vectors"].(map[string]any)
	assert.Equal(t, float64(384), vectors["size"])
	assert.Equal(t, "Cosine", vectors["distance"])
}

func TestEnsureCollection_InvalidSize(t *testing.T) {
	s := NewStore(Config{URL: "http://localhost:6333", Collection: "documents"})
	assert.Error(t, s.EnsureCollection(context.Background(), 0))
}

func TestUpsertBatch(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody struct {
		Points []map[string]any `json:"points"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "documents"})
	points := []models.Point{
		{ID: "id-1", Vector: []float32{0.1, 0.2}, Payload: models.Payload{Text: "hello", Source: "a.txt"}},
	}
	require.NoError(t, s.UpsertBatch(context.Background(), points))

	assert.Equal(t, "/collections/documents/points", gotPath)
	assert.Equal(t, "wait=true", gotQuery)
	require.Len(t, gotBody.Points, 1)
	assert.Equal(t, "id-1", gotBody.Points[0]["id"])
	payload := gotBody.Points[0]["payload"].(map[string]any)
	assert.Equal(t, "hello", payload["text"])
	assert.Equal(t, "a.txt", payload["source"])
}

func TestUpsertBatch_EmptyIsNoop(t *testing.T) {
	s := NewStore(Config{URL: "http://localhost:1", Collection: "documents"})
	assert.NoError(t, s.UpsertBatch(context.Background(), nil))
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/documents/points/search", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(3), req["limit"])
		assert.Equal(t, true, req["with_payload"])

		resp := map[string]any{
			"result": []map[string]any{
				{"id": "id-1", "score": 0.91, "payload": map[string]any{"text": "best", "source": "a.txt", "chunk_index": 0}},
				{"id": "id-2", "score": 0.42, "payload": map[string]any{"text": "worse", "source": "b.txt", "chunk_index": 3}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "documents"})
	results, err := s.Search(context.Background(), []float32{0.1, 0.2}, 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "id-1", results[0].ID)
	assert.Equal(t, 0.91, results[0].Score)
	assert.Equal(t, "best", results[0].Payload.Text)
	assert.Equal(t, 3, results[1].Payload.ChunkIndex)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "documents"})
	_, err := s.Search(context.Background(), []float32{0.1}, 5)
	assert.Error(t, err)
}

func TestAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, APIKey: "secret", Collection: "documents"})
	require.NoError(t, s.EnsureCollection(context.Background(), 8))
	assert.Equal(t, "secret", gotKey)
}
