package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/markdave123-py/VectorVault/internal/core/indexer"
)

type IngestHandler struct {
	ingestor *indexer.Ingestor
	dataDir  string
}

func NewIngestHandler(ingestor *indexer.Ingestor, dataDir string) *IngestHandler {
	return &IngestHandler{ingestor: ingestor, dataDir: dataDir}
}

type IngestRequest struct {
	DataDir string `json:"data_dir"`
}

// Ingest runs the pipeline over the configured data directory (or the one in
// the request body) and returns the run report.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dir := h.dataDir
	if r.Body != nil && r.ContentLength > 0 {
		var req IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.DataDir != "" {
			dir = req.DataDir
		}
	}

	report, err := h.ingestor.Ingest(ctx, dir)
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
