package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/alliancehq/alliance-rag/db"
	"github.com/alliancehq/alliance-rag/middleware"
	"github.com/alliancehq/alliance-rag/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const tenant = "alliance"

// maxTitleLen caps the conversation title derived from the first user message.
const maxTitleLen = 100

// HistoryController persists finished conversations and serves them back.
type HistoryController struct {
	sessions odm.OdmCollectionInterface[db.ChatSessionModel]
}

func NewHistoryController(sessions odm.OdmCollectionInterface[db.ChatSessionModel]) *HistoryController {
	return &HistoryController{sessions: sessions}
}

func ProvideHistoryController(mongo odm.MongoClient) *HistoryController {
	return NewHistoryController(odm.CollectionOf[db.ChatSessionModel](mongo, tenant))
}

// SaveConversation handles POST /history. An existing chat id updates the
// stored conversation in place; a missing id creates a new one.
func (hc *HistoryController) SaveConversation(w http.ResponseWriter, r *http.Request) {
	var req model.SaveConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "Messages are required", http.StatusBadRequest)
		return
	}

	chatID := req.ChatID
	if chatID == "" {
		chatID = uuid.New().String()
	}

	session := db.ChatSessionModel{
		SessionID: chatID,
		Title:     deriveTitle(req.Messages),
		Messages:  toMessageModels(req.Messages),
		CreatedOn: time.Now().Unix(),
	}

	if _, err := async.Await(hc.sessions.Save(r.Context(), session)); err != nil {
		logger.Error("Failed to save conversation", zap.String("chatId", chatID), zap.Error(err))
		http.Error(w, "Failed to save conversation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": chatID})
}

// ListConversations handles GET /history, newest first.
func (hc *HistoryController) ListConversations(w http.ResponseWriter, r *http.Request) {
	newestFirst := bson.D{{Key: "createdOn", Value: -1}}
	sessions, err := async.Await(hc.sessions.Find(r.Context(), bson.M{}, newestFirst, 0, 0))
	if err != nil {
		logger.Error("Failed to list conversations", zap.Error(err))
		http.Error(w, "Failed to list conversations", http.StatusInternalServerError)
		return
	}

	summaries, err := linq.Pipe2(
		linq.FromSlice(r.Context(), sessions),
		linq.Select(func(s db.ChatSessionModel) model.ConversationSummary {
			return model.ConversationSummary{
				ID:        s.SessionID,
				Title:     s.Title,
				CreatedAt: s.CreatedOn,
			}
		}),
		linq.ToSlice[model.ConversationSummary](),
	)
	if err != nil {
		logger.Error("Failed to collect conversation summaries", zap.Error(err))
		http.Error(w, "Failed to list conversations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// GetConversation handles GET /history/{id}.
func (hc *HistoryController) GetConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sessions, err := async.Await(hc.sessions.Find(r.Context(), bson.M{"_id": id}, nil, 1, 0))
	if err != nil {
		logger.Error("Failed to fetch conversation", zap.String("id", id), zap.Error(err))
		http.Error(w, "Failed to fetch conversation", http.StatusInternalServerError)
		return
	}
	if len(sessions) == 0 {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}

	s := sessions[0]
	detail := model.ConversationDetail{
		ConversationSummary: model.ConversationSummary{
			ID:        s.SessionID,
			Title:     s.Title,
			CreatedAt: s.CreatedOn,
		},
		Messages: toMessages(s.Messages),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

func deriveTitle(messages []model.ChatMessage) string {
	title := "New Chat"
	for _, m := range messages {
		if m.Sender == "user" && m.Text != "" {
			title = m.Text
			break
		}
	}
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen]) + "..."
	}
	return title
}

func toMessageModels(messages []model.ChatMessage) []db.ChatMessageModel {
	out := make([]db.ChatMessageModel, 0, len(messages))
	for _, m := range messages {
		out = append(out, db.ChatMessageModel{Text: m.Text, Sender: m.Sender, Sources: m.Sources})
	}
	return out
}

func toMessages(messages []db.ChatMessageModel) []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, model.ChatMessage{Text: m.Text, Sender: m.Sender, Sources: m.Sources})
	}
	return out
}

func (hc *HistoryController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/history",
			Method:  http.MethodPost,
			Handler: middleware.APIKeyAuthMiddleware(hc.SaveConversation),
		},
		{
			Pattern: "/history",
			Method:  http.MethodGet,
			Handler: middleware.APIKeyAuthMiddleware(hc.ListConversations),
		},
		{
			Pattern: "/history/{id}",
			Method:  http.MethodGet,
			Handler: middleware.APIKeyAuthMiddleware(hc.GetConversation),
		},
	}
}
