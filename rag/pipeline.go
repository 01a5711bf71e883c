package rag

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// Pipeline sequences classification, optional decomposition, evidence
// retrieval and answer synthesis for one request. All external-service
// handles are injected once at construction and shared across runs; a run
// itself holds no state beyond its own bundle.
type Pipeline struct {
	classifier  *Classifier
	decomposer  *Decomposer
	retriever   *Retriever
	synthesizer *Synthesizer
}

func NewPipeline(classifier *Classifier, decomposer *Decomposer, retriever *Retriever, synthesizer *Synthesizer) *Pipeline {
	return &Pipeline{
		classifier:  classifier,
		decomposer:  decomposer,
		retriever:   retriever,
		synthesizer: synthesizer,
	}
}

// Run executes the pipeline and streams its output. The channel carries zero
// or more Content events, then at most one of a Sources event (success) or an
// Err event (synthesis failure), and is always closed. Cancelling ctx aborts
// in-flight external calls and ends the stream.
func (p *Pipeline) Run(ctx context.Context, req Request) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		emit := func(ev Event) error {
			select {
			case out <- ev:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		classification := p.classifier.Classify(ctx, req.Query)
		logger.Info("query classified",
			zap.String("query", req.Query), zap.String("classification", string(classification)))

		var bundle *EvidenceBundle
		if classification == ClassificationSimple {
			bundle = p.retriever.RetrieveBroad(ctx, req.Query, req.Properties)
		} else {
			subQuestions := p.decomposer.Decompose(ctx, req.Query)
			bundle = p.retriever.Retrieve(ctx, subQuestions, req.Properties)
		}

		if err := p.synthesizer.Synthesize(ctx, req.Query, bundle, classification, req.History, emit); err != nil {
			logger.Error("answer synthesis failed", zap.Error(err))
			_ = emit(Event{Err: err})
		}
	}()

	return out
}
