package model

import "time"

// Message is a direct message between two profiles. A conversation is the
// unordered pair (sender, receiver); there is no conversation table.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contact is a chat counterparty derived from shared donation history.
// Contact lists are recomputed on every open, never persisted.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Unread    int    `json:"unread"`
}
