package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/VectorVault/internal/models"
	"github.com/markdave123-py/VectorVault/internal/services"
)

type stubEmbedder struct{}

func (stubEmbedder) EmbedText(context.Context, string) ([]float32, error) {
	return []float32{0.1}, nil
}

func (s stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1}
	}
	return out, nil
}

type stubStore struct {
	results []models.SearchResult
}

func (s *stubStore) EnsureCollection(context.Context, int) error       { return nil }
func (s *stubStore) UpsertBatch(context.Context, []models.Point) error { return nil }
func (s *stubStore) Search(context.Context, []float32, int) ([]models.SearchResult, error) {
	return s.results, nil
}
func (s *stubStore) Close() error { return nil }

type stubLLM struct{ answer string }

func (s stubLLM) Generate(context.Context, string, string) (string, error) {
	return s.answer, nil
}

func newSearchHandler(results []models.SearchResult, answer string) *SearchHandler {
	search := services.NewSearchService(&stubStore{results: results}, stubEmbedder{}, 5)
	ask := services.NewAskService(search, stubLLM{answer: answer}, "stub-model")
	return NewSearchHandler(search, ask)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestSearch_ReturnsResults(t *testing.T) {
	h := newSearchHandler([]models.SearchResult{
		{ID: "1", Score: 0.9, Payload: models.Payload{Text: "found", Source: "a.txt"}},
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"hello","top_k":3}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Query   string                `json:"query"`
		Results []models.SearchResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "hello", body.Query)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "found", body.Results[0].Payload.Text)
}

func TestSearch_RejectsEmptyQuery(t *testing.T) {
	h := newSearchHandler(nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":""}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_RejectsBadJSON(t *testing.T) {
	h := newSearchHandler(nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAsk_ReturnsAnswerWithContexts(t *testing.T) {
	h := newSearchHandler([]models.SearchResult{
		{ID: "1", Score: 0.8, Payload: models.Payload{Text: "ctx", Source: "a.txt"}},
	}, "generated answer")

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"query":"why?"}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var ans models.Answer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ans))
	assert.Equal(t, "generated answer", ans.Answer)
	assert.Equal(t, "stub-model", ans.Model)
	assert.Len(t, ans.Contexts, 1)
}
