package chat

import (
	"context"

	"tourdesk/internal/domain"
)

type ChatAPI interface {
	ListChatThreads(ctx context.Context) ([]domain.ChatThread, error)
	ListChatMessages(ctx context.Context, threadID int64) ([]domain.ChatMessage, error)
	SendChatMessage(ctx context.Context, threadID, senderID int64, text string) error
}

type Notifier interface {
	Errorf(text string)
}
