package domain

type ChatThread struct {
	ID          int64  `json:"thread_id"`
	Title       string `json:"title"`
	LastMessage string `json:"lastMessage,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ChatMessage is append-only within its thread.
type ChatMessage struct {
	ID         int64  `json:"message_id"`
	ThreadID   int64  `json:"thread_id"`
	SenderID   int64  `json:"senderId"`
	SenderName string `json:"senderName,omitempty"`
	Text       string `json:"text"`
	CreatedAt  string `json:"createdAt"`
}
