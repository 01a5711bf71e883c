package model

// ChatMessage is one turn of a conversation as exchanged with the frontend.
type ChatMessage struct {
	Text    string   `json:"text"`
	Sender  string   `json:"sender"` // "user" or "ai"
	Sources []string `json:"sources,omitempty"`
}

// ChatRequest is the inbound payload of the streaming chat endpoint.
type ChatRequest struct {
	Query      string        `json:"query" binding:"required"`
	History    []ChatMessage `json:"history"`
	Properties []string      `json:"properties,omitempty"` // restrict retrieval to these corpora
}

// SaveConversationRequest persists a finished conversation.
type SaveConversationRequest struct {
	ChatID   string        `json:"chat_id,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// ConversationSummary is the list view of a stored conversation.
type ConversationSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at"`
}

// ConversationDetail is a stored conversation with its full message list.
type ConversationDetail struct {
	ConversationSummary
	Messages []ChatMessage `json:"messages"`
}
