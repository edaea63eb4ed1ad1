package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markdave123-py/VectorVault/internal/core"
)

// OllamaEmbedder generates embeddings via a local Ollama server. It is the
// default provider so ingestion runs offline without an API key.
type OllamaEmbedder struct {
	client  *http.Client
	baseURL string
	model   string
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func NewOllamaEmbedder(baseURL, model string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "all-minilm"
	}
	return &OllamaEmbedder{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		model:   model,
	}
}

func (o *OllamaEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: o.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama embed: status %d: %s", resp.StatusCode, string(msg))
	}

	var out ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}

	vector := make([]float32, len(out.Embedding))
	for i, v := range out.Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

// EmbedTexts embeds each text with a separate request; Ollama has no batch
// endpoint for this API.
func (o *OllamaEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := o.EmbedText(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

var _ core.EmbeddingProvider = (*OllamaEmbedder)(nil)
