package service

import (
	"context"
	"strings"

	"swapnest/internal/entity"
)

type ChatService struct {
	chats    chatStore
	products productStore
}

func NewChatService(chats chatStore, products productStore) *ChatService {
	return &ChatService{chats: chats, products: products}
}

func (s *ChatService) ListConversations(ctx context.Context, userID int) ([]entity.Conversation, error) {
	return s.chats.ListConversationsByUser(ctx, userID)
}

// StartConversation opens a chat, optionally about a product, with the
// caller as first participant.
func (s *ChatService) StartConversation(ctx context.Context, userID int, productID *int) (*entity.Conversation, error) {
	if productID != nil {
		if _, err := s.products.GetProductByID(ctx, *productID); err != nil {
			return nil, err
		}
	}
	conv, err := s.chats.CreateConversation(ctx, productID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating conversation")
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) GetConversation(ctx context.Context, userID, conversationID int) (*entity.Conversation, error) {
	ok, err := s.chats.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entity.ErrForbidden
	}
	return s.chats.GetConversationByID(ctx, conversationID)
}

// ListMessages returns the conversation history and marks the other side's
// messages as read.
func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID int) ([]entity.Message, error) {
	ok, err := s.chats.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entity.ErrForbidden
	}

	msgs, err := s.chats.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := s.chats.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		logger.Error().Err(err).Msgf("Error marking messages read in conversation %d", conversationID)
	}
	return msgs, nil
}

// SendMessage appends to a conversation, joining the sender to it first if
// needed.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID int, content string) (*entity.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entity.NewValidationError("Message content cannot be empty.")
	}

	if _, err := s.chats.GetConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}
	ok, err := s.chats.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.chats.AddParticipant(ctx, conversationID, userID); err != nil {
			return nil, err
		}
	}

	msg := &entity.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
	}
	created, err := s.chats.CreateMessage(ctx, msg)
	if err != nil {
		logger.Error().Err(err).Msgf("Error sending message in conversation %d", conversationID)
		return nil, err
	}
	return created, nil
}
