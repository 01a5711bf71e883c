package rag

import (
	"context"
	"errors"

	"github.com/alliancehq/alliance-rag/llm"
	"github.com/alliancehq/alliance-rag/pinecone"
)

type fakeModel struct {
	completeFn func(ctx context.Context, req llm.CompletionRequest) (string, error)
	streamFn   func(ctx context.Context, req llm.CompletionRequest, emit func(string) error) error
}

func (f *fakeModel) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if f.completeFn == nil {
		return "", errors.New("complete not configured")
	}
	return f.completeFn(ctx, req)
}

func (f *fakeModel) StreamComplete(ctx context.Context, req llm.CompletionRequest, emit func(string) error) error {
	if f.streamFn == nil {
		return errors.New("stream not configured")
	}
	return f.streamFn(ctx, req, emit)
}

// fakeEmbedder returns a one-element vector identifying the embedded text, so
// a fakeIndex can answer per-question.
type fakeEmbedder struct {
	ids map[string]float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id, ok := f.ids[text]; ok {
		return []float32{id}, nil
	}
	return []float32{0}, nil
}

type fakeIndex struct {
	queryFn func(ctx context.Context, vector []float32, topK int, filter pinecone.Filter) ([]pinecone.Match, error)
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int, filter pinecone.Filter) ([]pinecone.Match, error) {
	return f.queryFn(ctx, vector, topK, filter)
}

func match(id, source, text string, score float64) pinecone.Match {
	return pinecone.Match{
		ID:       id,
		Score:    score,
		Metadata: pinecone.Metadata{Source: source, Text: text},
	}
}

func collect(events <-chan Event) []Event {
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}
