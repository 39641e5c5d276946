package api

import (
	"context"
	"fmt"

	"tourdesk/internal/domain"
)

type sendMessageBody struct {
	SenderID int64  `json:"senderId"`
	Text     string `json:"text"`
}

func (c *Client) ListChatThreads(ctx context.Context) ([]domain.ChatThread, error) {
	var threads []domain.ChatThread
	if err := c.getJSON(ctx, "/chat/threads", &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

func (c *Client) ListChatMessages(ctx context.Context, threadID int64) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	if err := c.getJSON(ctx, fmt.Sprintf("/chat/thread/%d/messages", threadID), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) SendChatMessage(ctx context.Context, threadID, senderID int64, text string) error {
	return c.postJSON(ctx, fmt.Sprintf("/chat/thread/%d/send", threadID), sendMessageBody{SenderID: senderID, Text: text}, nil)
}
