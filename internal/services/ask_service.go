package services

import (
	"context"
	"fmt"

	"github.com/markdave123-py/VectorVault/internal/agent"
	"github.com/markdave123-py/VectorVault/internal/core"
	"github.com/markdave123-py/VectorVault/internal/models"
)

// AskService answers questions over the indexed corpus: retrieve the most
// relevant chunks, build a grounded prompt, and hand it to the LLM.
type AskService struct {
	search *SearchService
	llm    core.LLMProvider
	model  string
}

func NewAskService(search *SearchService, llm core.LLMProvider, model string) *AskService {
	return &AskService{search: search, llm: llm, model: model}
}

func (s *AskService) Ask(ctx context.Context, question string, topK int) (*models.Answer, error) {
	contexts, err := s.search.Search(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	system, user := agent.BuildPrompt(question, contexts)
	text, err := s.llm.Generate(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &models.Answer{
		Answer:   text,
		Model:    s.model,
		Contexts: contexts,
	}, nil
}
