// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/markdave123-py/VectorVault/internal/agent"
	"github.com/markdave123-py/VectorVault/internal/config"
	"github.com/markdave123-py/VectorVault/internal/core"
	"github.com/markdave123-py/VectorVault/internal/core/indexer"
	"github.com/markdave123-py/VectorVault/internal/core/llm"
	"github.com/markdave123-py/VectorVault/internal/core/splitter"
	"github.com/markdave123-py/VectorVault/internal/core/vectorstore/pgvector"
	"github.com/markdave123-py/VectorVault/internal/core/vectorstore/qdrant"
	"github.com/markdave123-py/VectorVault/internal/services"
)

type App struct {
	Store    core.VectorStore
	Embedder core.EmbeddingProvider
	LLM      core.LLMProvider
	Ingestor *indexer.Ingestor
	Search   *services.SearchService
	Ask      *services.AskService
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := NewVectorStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Vector store initialized (%s backend).", cfg.StoreBackend)

	embedder, err := NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	llmProvider, model, err := NewLLM(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider, %w", err)
	}

	ingestor := indexer.NewIngestor(store, embedder, indexer.Config{
		Splitter: splitter.Options{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			MinChunkSize: cfg.MinChunkSize,
		},
		VectorSize:      cfg.VectorSize,
		UpsertBatchSize: cfg.UpsertBatchSize,
	})

	search := services.NewSearchService(store, embedder, cfg.DefaultTopK)
	ask := services.NewAskService(search, llmProvider, model)

	server := NewServer(cfg, ingestor, search, ask)

	return &App{
		Store:    store,
		Embedder: embedder,
		LLM:      llmProvider,
		Ingestor: ingestor,
		Search:   search,
		Ask:      ask,
		Server:   server,
	}, nil
}

// NewVectorStore picks the backend from config.
func NewVectorStore(ctx context.Context, cfg *config.Config) (core.VectorStore, error) {
	switch cfg.StoreBackend {
	case "qdrant":
		return qdrant.NewStore(qdrant.Config{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.Collection,
		}), nil
	case "pgvector":
		return pgvector.NewStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// NewEmbedder picks the embedding provider from config.
func NewEmbedder(ctx context.Context, cfg *config.Config) (core.EmbeddingProvider, error) {
	switch cfg.EmbedProvider {
	case "ollama":
		return llm.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbedModel), nil
	case "gemini":
		return llm.NewGeminiEmbedder(ctx, cfg.AIAPIKey, cfg.EmbedModel)
	default:
		return nil, fmt.Errorf("unknown EMBED_PROVIDER %q", cfg.EmbedProvider)
	}
}

// NewLLM picks the answer generator from config and reports the model name
// used for response metadata.
func NewLLM(ctx context.Context, cfg *config.Config) (core.LLMProvider, string, error) {
	switch cfg.LLMProvider {
	case "cli":
		runner := agent.NewCLIRunner(cfg.AgentCmd, cfg.AgentModel, time.Duration(cfg.AgentTimeoutSeconds)*time.Second)
		return runner, cfg.AgentModel, nil
	case "gemini":
		provider, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
		if err != nil {
			return nil, "", err
		}
		return provider, cfg.GenModel, nil
	default:
		return nil, "", fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func (a *App) Close() {
	if a.Store != nil {
		_ = a.Store.Close()
	}
	if closer, ok := a.Embedder.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if closer, ok := a.LLM.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
