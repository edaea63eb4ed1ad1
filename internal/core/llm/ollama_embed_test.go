package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaEmbedder_EmbedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "all-minilm", req.Model)
		assert.Equal(t, "hello", req.Prompt)

		require.NoError(t, json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Embedding: []float64{0.25, -0.5, 1.0},
		}))
	}))
	defer srv.Close()

	emb := NewOllamaEmbedder(srv.URL, "")
	vec, err := emb.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 1.0}, vec)
}

func TestOllamaEmbedder_EmbedTexts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Embedding: []float64{float64(calls)},
		}))
	}))
	defer srv.Close()

	emb := NewOllamaEmbedder(srv.URL, "all-minilm")
	vectors, err := emb.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float32{1}, vectors[0])
	assert.Equal(t, []float32{3}, vectors[2])
}

func TestOllamaEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	emb := NewOllamaEmbedder(srv.URL, "missing-model")
	_, err := emb.EmbedText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
