package llm

import "context"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn handed to the model.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries one model invocation. Temperature 0 gives
// deterministic decoding; MaxTokens 0 leaves the output budget to the provider.
type CompletionRequest struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client is a reusable handle to the generative model service. Implementations
// must be safe for concurrent use; one handle is constructed at process start
// and shared across requests.
type Client interface {
	// Complete runs a one-shot completion and returns the full response text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// StreamComplete runs a streaming completion, invoking emit for every
	// content chunk in arrival order. A non-nil error from emit aborts the
	// stream and is returned as-is.
	StreamComplete(ctx context.Context, req CompletionRequest, emit func(chunk string) error) error
}
