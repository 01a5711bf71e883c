package rag

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/alliancehq/alliance-rag/llm"
	"go.uber.org/zap"
)

const decomposerPrompt = `You break a complex question about property documents into smaller,
independently answerable sub-questions.

Return ONLY a JSON array of strings, one sub-question per element, ordered so
that the most important sub-question comes first. No prose, no markdown, no
explanation.

Example:
Question: Compare financial performance across properties.
["What is the net operating income of each property?","What are the total operating expenses of each property?","What is the occupancy rate of each property?"]`

// Decomposer splits a complex query into ordered sub-questions.
type Decomposer struct {
	model llm.Client
}

func NewDecomposer(model llm.Client) *Decomposer {
	return &Decomposer{model: model}
}

// Decompose returns the sub-questions for the query, in the order evidence
// should be gathered and presented. Any model failure or malformed output
// degrades to a single sub-question equal to the original query, so the run
// always proceeds.
func (d *Decomposer) Decompose(ctx context.Context, query string) []string {
	out, err := d.model.Complete(ctx, llm.CompletionRequest{
		System:      decomposerPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: query}},
		Temperature: 0,
		MaxTokens:   1024,
	})
	if err != nil {
		logger.Error("query decomposition failed, using original query", zap.Error(err))
		return []string{query}
	}

	var subQuestions []string
	if err := json.Unmarshal([]byte(stripCodeFence(out)), &subQuestions); err != nil {
		logger.Info("decomposition output is not a JSON string array, using original query",
			zap.String("output", out))
		return []string{query}
	}

	kept := subQuestions[:0]
	for _, q := range subQuestions {
		if strings.TrimSpace(q) != "" {
			kept = append(kept, q)
		}
	}
	if len(kept) == 0 {
		return []string{query}
	}
	return kept
}

// stripCodeFence removes a surrounding markdown code fence, which models
// frequently add despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
