package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/alliancehq/alliance-rag/llm"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Labels(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Classification
	}{
		{"simple", "simple", ClassificationSimple},
		{"uppercase", "SIMPLE", ClassificationSimple},
		{"trailing punctuation", `"Simple".`, ClassificationSimple},
		{"complex", "complex", ClassificationComplex},
		{"whitespace", "  complex\n", ClassificationComplex},
		{"unknown label", "banana", ClassificationComplex},
		{"empty output", "", ClassificationComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&fakeModel{
				completeFn: func(ctx context.Context, req llm.CompletionRequest) (string, error) {
					return tt.output, nil
				},
			})
			assert.Equal(t, tt.want, c.Classify(context.Background(), "What is the monthly rent?"))
		})
	}
}

func TestClassify_ModelFailureDefaultsToComplex(t *testing.T) {
	c := NewClassifier(&fakeModel{
		completeFn: func(ctx context.Context, req llm.CompletionRequest) (string, error) {
			return "", errors.New("model unavailable")
		},
	})
	assert.Equal(t, ClassificationComplex, c.Classify(context.Background(), "anything"))
}

func TestClassify_DeterministicRequest(t *testing.T) {
	var captured llm.CompletionRequest
	c := NewClassifier(&fakeModel{
		completeFn: func(ctx context.Context, req llm.CompletionRequest) (string, error) {
			captured = req
			return "simple", nil
		},
	})

	query := "What is the monthly rent?"
	c.Classify(context.Background(), query)

	assert.Zero(t, captured.Temperature)
	assert.NotZero(t, captured.MaxTokens)
	// the query text is passed through untouched
	assert.Equal(t, query, captured.Messages[len(captured.Messages)-1].Content)
}
