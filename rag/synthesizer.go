package rag

import (
	"context"

	"github.com/alliancehq/alliance-rag/llm"
)

const synthesisMaxTokens = 8192

// Synthesizer produces the final answer stream from gathered evidence.
type Synthesizer struct {
	model llm.Client
}

func NewSynthesizer(model llm.Client) *Synthesizer {
	return &Synthesizer{model: model}
}

// Synthesize streams the answer as Content events via emit and, after the
// last token, emits the Sources event. Citations describe the completed
// answer, so clients must never see them before the content finishes. A model
// failure is returned without a Sources event; the caller turns it into the
// run's terminal error.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	query string,
	bundle *EvidenceBundle,
	classification Classification,
	history []Turn,
	emit func(Event) error,
) error {
	var req llm.CompletionRequest
	if classification == ClassificationSimple {
		req = llm.CompletionRequest{
			System: simpleAnswerPrompt + "\n\nRetrieved passages:\n\n" + buildSimpleEvidence(bundle),
			Messages: append(historyMessages(history),
				llm.Message{Role: llm.RoleUser, Content: query}),
			Temperature: 0,
			MaxTokens:   synthesisMaxTokens,
		}
	} else {
		req = llm.CompletionRequest{
			System: complexAnswerPrompt + "\n\nEvidence:\n\n" + buildComplexEvidence(bundle),
			Messages: append(historyMessages(history),
				llm.Message{Role: llm.RoleUser, Content: query}),
			Temperature: 0.7,
			MaxTokens:   synthesisMaxTokens,
		}
	}

	err := s.model.StreamComplete(ctx, req, func(chunk string) error {
		return emit(Event{Content: chunk})
	})
	if err != nil {
		return err
	}

	return emit(Event{Sources: bundle.Sources()})
}
