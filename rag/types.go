package rag

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/alliancehq/alliance-rag/pinecone"
)

// Classification decides which answer strategy a query takes.
type Classification string

const (
	// ClassificationSimple marks a single-fact lookup.
	ClassificationSimple Classification = "simple"
	// ClassificationComplex marks a query that needs decomposition and
	// multi-evidence synthesis. It is also the fallback whenever the
	// classifier is unsure or unavailable.
	ClassificationComplex Classification = "complex"
)

// Turn is one prior message of the conversation.
type Turn struct {
	Sender string // "user" or "ai"
	Text   string
}

// Request is the unit of work for one pipeline run.
type Request struct {
	Query      string
	History    []Turn
	Properties []string // restrict retrieval to these property corpora
}

// Event is one unit of streamed pipeline output. Exactly one field is set:
// Content carries an answer token, Sources the final citation list, Err a
// terminal failure. Sources, when present, is always the last event before
// the channel closes.
type Event struct {
	Content string
	Sources []string
	Err     error
}

// QuestionEvidence holds the matches retrieved for one sub-question.
// An empty Matches slice means retrieval found nothing (or failed) for it.
type QuestionEvidence struct {
	Question string
	Matches  []pinecone.Match
}

// EvidenceBundle is the ordered evidence for a run: one entry per
// sub-question, in decomposition order.
type EvidenceBundle struct {
	Items []QuestionEvidence
}

// Sources returns the union of source documents across all matches, in first
// occurrence order. Only questions with actual evidence contribute, so the
// list cites exactly the documents the synthesis prompt saw. Never nil, so a
// Sources event is distinguishable from a Content event even when empty.
func (b *EvidenceBundle) Sources() []string {
	seen := ds.NewSet[string]()
	sources := []string{}
	for _, item := range b.Items {
		for _, m := range item.Matches {
			if m.Metadata.Source == "" || seen.Contains(m.Metadata.Source) {
				continue
			}
			seen.Add(m.Metadata.Source)
			sources = append(sources, m.Metadata.Source)
		}
	}
	return sources
}

// Empty reports whether no sub-question retrieved any evidence.
func (b *EvidenceBundle) Empty() bool {
	for _, item := range b.Items {
		if len(item.Matches) > 0 {
			return false
		}
	}
	return true
}

// Embedder converts text into the index's vector space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index is the document index service: nearest-neighbour search over
// embeddings with optional metadata filtering.
type Index interface {
	Query(ctx context.Context, vector []float32, topK int, filter pinecone.Filter) ([]pinecone.Match, error)
}
