package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xXAMIRAYA/PSynthese/internal/metrics"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
)

type chatServiceImpl struct {
	profiles repository.ProfileRepository
	messages repository.MessageRepository
}

// NewChatService creates a ChatService backed by the given repositories.
func NewChatService(profiles repository.ProfileRepository, messages repository.MessageRepository) ChatService {
	return &chatServiceImpl{profiles: profiles, messages: messages}
}

func (s *chatServiceImpl) Contacts(ctx context.Context, userID string) ([]*model.Contact, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch p.Role {
	case model.RoleCampaignManager:
		return s.profiles.DonorContacts(ctx, userID)
	case model.RoleAdmin:
		return s.profiles.NonAdminContacts(ctx, userID)
	default:
		return s.profiles.OrganizerContacts(ctx, userID)
	}
}

func (s *chatServiceImpl) Conversation(ctx context.Context, userID, contactID string) ([]*model.Message, error) {
	return s.messages.ConversationBetween(ctx, userID, contactID)
}

func (s *chatServiceImpl) Send(ctx context.Context, senderID, receiverID, content string) (*model.Message, error) {
	content = strings.TrimSpace(messagePolicy.Sanitize(content))
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrValidation)
	}
	// Receiver must exist; surfaces as 404 instead of an FK error.
	if _, err := s.profiles.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	m := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()
	return m, nil
}

func (s *chatServiceImpl) MarkRead(ctx context.Context, userID, contactID string) error {
	return s.messages.MarkReadFrom(ctx, userID, contactID)
}

func (s *chatServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	return s.messages.MarkAllRead(ctx, userID)
}
