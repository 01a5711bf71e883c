package rag

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/alliancehq/alliance-rag/llm"
	"go.uber.org/zap"
)

const classifierPrompt = `You classify user questions about a corpus of property documents.

Reply with exactly one word, either "simple" or "complex".

A question is "simple" when it asks for a single fact that one passage can answer.
A question is "complex" when answering it requires comparing, aggregating or
synthesizing information from multiple passages or documents.

Examples:
Q: What is the monthly rent?
A: simple
Q: Who is the property manager for Oakwood Plaza?
A: simple
Q: Compare financial performance across all properties.
A: complex
Q: Summarize the risks mentioned in the lease agreements.
A: complex`

// Classifier decides which answer strategy a query takes. It never mutates
// the query text.
type Classifier struct {
	model llm.Client
}

func NewClassifier(model llm.Client) *Classifier {
	return &Classifier{model: model}
}

// Classify labels the query as simple or complex. Any failure or unexpected
// label falls back to complex: the thorough multi-evidence path is the safer
// default for an ambiguous question.
func (c *Classifier) Classify(ctx context.Context, query string) Classification {
	out, err := c.model.Complete(ctx, llm.CompletionRequest{
		System:      classifierPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: query}},
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		logger.Error("query classification failed, defaulting to complex", zap.Error(err))
		return ClassificationComplex
	}

	switch strings.ToLower(strings.Trim(strings.TrimSpace(out), `"'.`)) {
	case string(ClassificationSimple):
		return ClassificationSimple
	case string(ClassificationComplex):
		return ClassificationComplex
	default:
		logger.Info("unexpected classification label, defaulting to complex", zap.String("label", out))
		return ClassificationComplex
	}
}
