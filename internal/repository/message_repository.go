package repository

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// MessageRepository handles persistence for direct messages. Messages are
// insert-only except for the read flag, which only ever flips to true.
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	// ConversationBetween returns messages where (sender, receiver) equals
	// either ordering of (userID, contactID), in chronological order.
	ConversationBetween(ctx context.Context, userID, contactID string) ([]*model.Message, error)
	// MarkReadFrom flips read=true on unread messages sent by senderID to
	// receiverID. Messages from other senders are untouched.
	MarkReadFrom(ctx context.Context, receiverID, senderID string) error
	// MarkAllRead flips read=true on every unread message addressed to the
	// user (used when the chat panel closes).
	MarkAllRead(ctx context.Context, receiverID string) error
	UnreadCount(ctx context.Context, receiverID string) (int, error)
}
