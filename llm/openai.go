package llm

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	completionTimeout = 30 * time.Second
	streamTimeout     = 5 * time.Minute
)

// OpenAIClient implements Client over the OpenAI chat completions API.
// The API key is read from OPENAI_API_KEY unless overridden via options.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(model string, opts ...option.RequestOption) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, c.buildParams(req))
	if err != nil {
		return "", status.Errorf(codes.Internal, "chat completion: %v", err)
	}
	if len(completion.Choices) == 0 {
		return "", status.Error(codes.Internal, "chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) StreamComplete(ctx context.Context, req CompletionRequest, emit func(chunk string) error) error {
	ctx, cancel := context.WithTimeout(ctx, streamTimeout)
	defer cancel()

	stream := c.client.Chat.Completions.NewStreaming(ctx, c.buildParams(req))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := emit(delta); err != nil {
				return err
			}
		}
	}

	if err := stream.Err(); err != nil {
		return status.Errorf(codes.Internal, "chat completion stream: %v", err)
	}
	return nil
}

func (c *OpenAIClient) buildParams(req CompletionRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	return params
}
