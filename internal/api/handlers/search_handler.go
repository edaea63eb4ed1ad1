package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/markdave123-py/VectorVault/internal/services"
)

type SearchHandler struct {
	search *services.SearchService
	ask    *services.AskService
}

func NewSearchHandler(search *services.SearchService, ask *services.AskService) *SearchHandler {
	return &SearchHandler{search: search, ask: ask}
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// Search returns the chunks most similar to the query.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	results, err := h.search.Search(ctx, req.Query, req.TopK)
	if err != nil {
		http.Error(w, fmt.Sprintf("search failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":   req.Query,
		"results": results,
	})
}

// Ask retrieves context for the question and generates a grounded answer.
func (h *SearchHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	answer, err := h.ask.Ask(ctx, req.Query, req.TopK)
	if err != nil {
		http.Error(w, fmt.Sprintf("ask failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(answer)
}
