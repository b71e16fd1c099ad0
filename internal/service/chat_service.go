package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotChatPartners = errors.New("chat is only available between a trainer and their trainee")
	ErrEmptyMessage    = errors.New("message content is required")
)

// ChatService handles 1:1 trainer↔trainee conversations.
type ChatService interface {
	// Conversation returns all messages between the requester and partner,
	// oldest first, and marks the partner's messages as read.
	Conversation(ctx context.Context, requester *domain.User, partnerID primitive.ObjectID) ([]domain.Message, error)
	Send(ctx context.Context, sender *domain.User, receiverID primitive.ObjectID, content string) (*domain.Message, error)
}

type chatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewChatService creates a new instance of chatService.
func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) ChatService {
	return &chatService{messageRepo: messageRepo, userRepo: userRepo}
}

// validatePair checks the trainer↔trainee pairing in either direction.
func (s *chatService) validatePair(ctx context.Context, requester *domain.User, partnerID primitive.ObjectID) error {
	switch {
	case requester.IsTrainee():
		if requester.TrainerID == nil || *requester.TrainerID != partnerID {
			return ErrNotChatPartners
		}
		return nil
	case requester.IsTrainer():
		partner, err := s.userRepo.GetByID(ctx, partnerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !partner.IsTrainee() || partner.TrainerID == nil || *partner.TrainerID != requester.ID {
			return ErrNotChatPartners
		}
		return nil
	default:
		// Admins manage accounts but do not take part in coaching chat.
		return ErrNotChatPartners
	}
}

func (s *chatService) Conversation(ctx context.Context, requester *domain.User, partnerID primitive.ObjectID) ([]domain.Message, error) {
	if err := s.validatePair(ctx, requester, partnerID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.GetConversation(ctx, requester.ID, partnerID)
	if err != nil {
		return nil, err
	}

	// Opening the conversation counts as reading it.
	if err := s.messageRepo.MarkConversationRead(ctx, partnerID, requester.ID); err == nil {
		for i := range messages {
			if messages[i].ReceiverID == requester.ID {
				messages[i].Read = true
			}
		}
	}
	return messages, nil
}

func (s *chatService) Send(ctx context.Context, sender *domain.User, receiverID primitive.ObjectID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if err := s.validatePair(ctx, sender, receiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Content:    content,
	}
	id, err := s.messageRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id
	return msg, nil
}
