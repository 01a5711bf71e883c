package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/alliancehq/alliance-rag/appconfig"
	"github.com/alliancehq/alliance-rag/llm"
	"github.com/alliancehq/alliance-rag/model"
	"github.com/alliancehq/alliance-rag/pinecone"
	"github.com/alliancehq/alliance-rag/rag"
	"go.uber.org/zap"
)

const doneSentinel = "[DONE]"

// ChatController streams answers to document questions over SSE.
type ChatController struct {
	pipeline *rag.Pipeline
}

func NewChatController(pipeline *rag.Pipeline) *ChatController {
	return &ChatController{pipeline: pipeline}
}

// ProvideChatController wires the full pipeline: classifier and decomposer on
// the small model, synthesis on the large one, retrieval over the Pinecone
// index with Jina embeddings. All handles are built once and reused.
func ProvideChatController(embedder embed.Embedder) *ChatController {
	cfg := appconfig.Load()

	index := pinecone.NewClient(pinecone.Config{
		Host:      cfg.PineconeIndexHost,
		APIKey:    os.Getenv("PINECONE_API_KEY"),
		Dimension: cfg.EmbeddingDimension,
	})

	classifierModel := llm.NewOpenAIClient(cfg.ClassifierModel)
	synthesisModel := llm.NewOpenAIClient(cfg.SynthesisModel)

	retriever := rag.NewRetriever(rag.NewJinaEmbedder(embedder), index).
		WithSubQuestionTopK(cfg.SubQuestionTopK).
		WithBroadProbeTopK(cfg.BroadProbeTopK).
		WithBroadProbes(cfg.BroadProbes(), cfg.BroadMatchLimit)

	pipeline := rag.NewPipeline(
		rag.NewClassifier(classifierModel),
		rag.NewDecomposer(classifierModel),
		retriever,
		rag.NewSynthesizer(synthesisModel),
	)

	return NewChatController(pipeline)
}

// HandleChatStream handles POST /chat/stream. The response is a server-sent
// event stream: zero or more {"content": ...} events in model order, then at
// most one {"sources": [...]} event, or an {"error": ...} event on synthesis
// failure, and always a final [DONE] sentinel.
func (c *ChatController) HandleChatStream(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode chat request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The request context cancels in-flight pipeline calls when the client
	// disconnects.
	events := c.pipeline.Run(r.Context(), rag.Request{
		Query:      req.Query,
		History:    toTurns(req.History),
		Properties: req.Properties,
	})

	for ev := range events {
		switch {
		case ev.Err != nil:
			writeEvent(w, map[string]string{"error": ev.Err.Error()})
		case ev.Sources != nil:
			if len(ev.Sources) > 0 {
				writeEvent(w, map[string][]string{"sources": ev.Sources})
			}
		default:
			writeEvent(w, map[string]string{"content": ev.Content})
		}
		flusher.Flush()
	}

	fmt.Fprintf(w, "data: %s\n\n", doneSentinel)
	flusher.Flush()

	logger.Info("Chat stream completed", zap.String("query", req.Query))
}

func writeEvent(w http.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal stream event", zap.Error(err))
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}

func toTurns(messages []model.ChatMessage) []rag.Turn {
	turns := make([]rag.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, rag.Turn{Sender: m.Sender, Text: m.Text})
	}
	return turns
}

func (c *ChatController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/chat/stream",
			Method:  http.MethodPost,
			Handler: c.HandleChatStream,
		},
	}
}
