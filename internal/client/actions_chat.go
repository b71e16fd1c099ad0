package client

import (
	"context"
	"net/http"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SendMessage posts a message to the requester's chat partner and appends it
// to the cached conversation when that conversation is the one on screen.
func (s *Session) SendMessage(ctx context.Context, receiverID primitive.ObjectID, content string) (*domain.Message, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionChat) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"receiverId": receiverID.Hex(), "content": content}
	var env messageEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/messages", payload, &env); err != nil {
		return nil, err
	}
	if env.Message == nil {
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	if s.chatPartner == receiverID {
		s.messages = append(s.messages, *env.Message)
	}
	s.mu.Unlock()
	return env.Message, nil
}
