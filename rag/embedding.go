package rag

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-collection-boot/async"
)

// JinaEmbedder adapts the boot embedding client to the pipeline's Embedder
// interface, always embedding with the retrieval-query task profile.
type JinaEmbedder struct {
	inner embed.Embedder
}

func NewJinaEmbedder(inner embed.Embedder) *JinaEmbedder {
	return &JinaEmbedder{inner: inner}
}

func (j *JinaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return async.Await(j.inner.GetEmbedding(ctx, text, embed.WithTask("retrieval.query")))
}
