// Package agent turns retrieved context into LLM prompts and drives a
// headless coding-agent CLI as one of the answer backends.
package agent

import (
	"fmt"
	"strings"

	"github.com/markdave123-py/VectorVault/internal/models"
)

const systemPrompt = `You are a knowledgeable assistant. Answer the user's question based on the provided reference materials below.

Rules:
1. Prioritize information from the reference materials and cite the source.
2. If the reference materials are insufficient, clearly state which parts come from the references and which are your own supplementation.
3. Reply in the same language the user used to ask the question.
4. Keep the answer concise and well-structured.`

// BuildPrompt assembles the system and user prompts for a RAG answer. The
// user prompt carries the retrieved chunks, each labelled with its source,
// position and similarity score.
func BuildPrompt(question string, contexts []models.SearchResult) (system, user string) {
	var b strings.Builder
	b.WriteString("========== Reference Materials ==========\n")
	if len(contexts) == 0 {
		b.WriteString("(No relevant reference materials found)\n")
	} else {
		for _, c := range contexts {
			fmt.Fprintf(&b, "[Source: %s, chunk #%d, similarity: %.4f]\n%s\n---\n",
				c.Payload.Source, c.Payload.ChunkIndex, c.Score, c.Payload.Text)
		}
	}
	b.WriteString("========== End of Reference Materials ==========\n")
	fmt.Fprintf(&b, "\nUser question: %s\n", question)

	return systemPrompt, b.String()
}
