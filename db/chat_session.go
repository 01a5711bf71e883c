package db

// ChatMessageModel is one stored conversation turn.
type ChatMessageModel struct {
	Text    string   `bson:"text"`
	Sender  string   `bson:"sender"`
	Sources []string `bson:"sources,omitempty"`
}

// ChatSessionModel is a finished conversation persisted to Mongo.
type ChatSessionModel struct {
	SessionID string             `bson:"_id"`
	Title     string             `bson:"title"`
	Messages  []ChatMessageModel `bson:"messages"`
	CreatedOn int64              `bson:"createdOn"`
}

func (m ChatSessionModel) Id() string {
	return m.SessionID
}

func (m ChatSessionModel) CollectionName() string {
	return "chat_sessions"
}
