package rag

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/alliancehq/alliance-rag/pinecone"
	"go.uber.org/zap"
)

const (
	// DefaultSubQuestionTopK is the per-sub-question match budget on the
	// decomposed path.
	DefaultSubQuestionTopK = 5
	// DefaultBroadProbeTopK is the per-query match budget on the broad
	// simple-query path. Wider than the sub-question budget; the pooled
	// result is deduplicated and capped afterwards.
	DefaultBroadProbeTopK = 15
	// DefaultBroadMatchLimit caps the pooled matches on the broad
	// simple-query path.
	DefaultBroadMatchLimit = 15
)

// DefaultBroadProbes are the generic queries issued alongside the user's
// question on the simple path. Simple factual lookups often miss on semantic
// search when the document phrases the fact differently, so breadth
// compensates for precision. The set is configuration, not contract.
var DefaultBroadProbes = []string{
	"financial summary and key amounts",
	"lease terms and rent",
	"property overview and details",
	"important dates and deadlines",
}

// synonymClusters are term families treated as equivalent at retrieval time.
// The first term is the canonical one; a question mentioning any member gets
// the rest appended as an inclusive disjunction to widen embedding recall.
var synonymClusters = [][]string{
	{"rent roll", "rent schedule", "tenancy schedule"},
	{"T12", "trailing twelve months", "TTM", "trailing 12 months"},
	{"NOI", "net operating income"},
	{"P&L", "profit and loss", "income statement", "operating statement"},
	{"cap rate", "capitalization rate"},
}

// Retriever gathers evidence from the document index for one or more
// sub-questions.
type Retriever struct {
	embedder        Embedder
	index           Index
	subQuestionTopK int
	broadProbes     []string
	broadProbeTopK  int
	broadMatchLimit int
}

func NewRetriever(embedder Embedder, index Index) *Retriever {
	return &Retriever{
		embedder:        embedder,
		index:           index,
		subQuestionTopK: DefaultSubQuestionTopK,
		broadProbes:     DefaultBroadProbes,
		broadProbeTopK:  DefaultBroadProbeTopK,
		broadMatchLimit: DefaultBroadMatchLimit,
	}
}

// WithSubQuestionTopK overrides the per-sub-question match budget.
func (r *Retriever) WithSubQuestionTopK(k int) *Retriever {
	if k > 0 {
		r.subQuestionTopK = k
	}
	return r
}

// WithBroadProbeTopK overrides the per-query match budget on the broad path.
func (r *Retriever) WithBroadProbeTopK(k int) *Retriever {
	if k > 0 {
		r.broadProbeTopK = k
	}
	return r
}

// WithBroadProbes overrides the probe queries used on the simple path.
func (r *Retriever) WithBroadProbes(probes []string, limit int) *Retriever {
	if len(probes) > 0 {
		r.broadProbes = probes
	}
	if limit > 0 {
		r.broadMatchLimit = limit
	}
	return r
}

// Retrieve gathers evidence for every sub-question independently and returns
// a bundle in sub-question order. Retrievals run concurrently; a failure for
// one sub-question records empty evidence for it and never blocks the others.
func (r *Retriever) Retrieve(ctx context.Context, subQuestions []string, properties []string) *EvidenceBundle {
	tasks := make([]<-chan async.Result[[]pinecone.Match], len(subQuestions))
	for i, question := range subQuestions {
		tasks[i] = async.Go(func() ([]pinecone.Match, error) {
			return r.search(ctx, question, r.subQuestionTopK, properties)
		})
	}

	bundle := &EvidenceBundle{Items: make([]QuestionEvidence, 0, len(subQuestions))}
	for i, task := range tasks {
		matches, err := async.Await(task)
		if err != nil {
			logger.Error("evidence retrieval failed, recording empty evidence",
				zap.String("question", subQuestions[i]), zap.Error(err))
			matches = nil
		}
		bundle.Items = append(bundle.Items, QuestionEvidence{Question: subQuestions[i], Matches: matches})
	}
	return bundle
}

// RetrieveBroad is the simple-query path: the original query plus the probe
// set are all issued against the index, results pooled in query order,
// deduplicated by match identity (first occurrence wins) and truncated to the
// configured cap.
func (r *Retriever) RetrieveBroad(ctx context.Context, query string, properties []string) *EvidenceBundle {
	queries := append([]string{query}, r.broadProbes...)

	tasks := make([]<-chan async.Result[[]pinecone.Match], len(queries))
	for i, q := range queries {
		tasks[i] = async.Go(func() ([]pinecone.Match, error) {
			return r.search(ctx, q, r.broadProbeTopK, properties)
		})
	}

	seen := ds.NewSet[string]()
	pooled := make([]pinecone.Match, 0, r.broadMatchLimit)
	for i, task := range tasks {
		matches, err := async.Await(task)
		if err != nil {
			logger.Error("broad retrieval probe failed", zap.String("probe", queries[i]), zap.Error(err))
			continue
		}
		for _, m := range matches {
			if seen.Contains(m.ID) {
				continue
			}
			seen.Add(m.ID)
			pooled = append(pooled, m)
		}
	}
	if len(pooled) > r.broadMatchLimit {
		pooled = pooled[:r.broadMatchLimit]
	}

	return &EvidenceBundle{Items: []QuestionEvidence{{Question: query, Matches: pooled}}}
}

func (r *Retriever) search(ctx context.Context, question string, topK int, properties []string) ([]pinecone.Match, error) {
	vector, err := r.embedder.Embed(ctx, expandSynonyms(question))
	if err != nil {
		return nil, err
	}
	return r.index.Query(ctx, vector, topK, pinecone.Filter{Properties: properties})
}

// expandSynonyms appends the other members of any matched term family as an
// inclusive disjunction. A pure text transform; it only widens what the
// embedding can latch onto.
func expandSynonyms(question string) string {
	lower := strings.ToLower(question)
	var extra []string
	for _, cluster := range synonymClusters {
		for _, term := range cluster {
			if !strings.Contains(lower, strings.ToLower(term)) {
				continue
			}
			for _, other := range cluster {
				if other != term {
					extra = append(extra, other)
				}
			}
			break
		}
	}
	if len(extra) == 0 {
		return question
	}
	return question + " (including " + strings.Join(extra, ", ") + ")"
}
