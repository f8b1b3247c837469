package service

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// ChatService provides contact discovery, conversation history and
// read-state maintenance for the direct-messaging feature.
type ChatService interface {
	// Contacts derives the contact list from shared donation history:
	// donators see the organizers of campaigns they donated to, campaign
	// managers see the donors across their campaigns, admins see every
	// non-admin profile. An empty list is a normal result, not an error.
	Contacts(ctx context.Context, userID string) ([]*model.Contact, error)
	Conversation(ctx context.Context, userID, contactID string) ([]*model.Message, error)
	Send(ctx context.Context, senderID, receiverID, content string) (*model.Message, error)
	// MarkRead marks unread messages from contactID to userID as read;
	// messages from other senders are unaffected.
	MarkRead(ctx context.Context, userID, contactID string) error
	// MarkAllRead marks every unread message addressed to the user as read
	// (fired when the chat panel closes). Best effort, not transactional
	// with any UI state.
	MarkAllRead(ctx context.Context, userID string) error
}
