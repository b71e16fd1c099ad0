package client

import (
	"context"
	"net/http"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationInput carries an outgoing notification. The specifier is a
// user identifier, a role name, or "all"; broad targeting is admin-only.
type NotificationInput struct {
	RecipientSpecifier string `json:"recipientSpecifier"`
	Title              string `json:"title"`
	Message            string `json:"message"`
	Link               string `json:"link,omitempty"`
}

// SendNotification creates a notification. Trainers may only target a single
// user identifier; role and "all" specifiers fail the pre-check.
func (s *Session) SendNotification(ctx context.Context, input NotificationInput) (*domain.NotificationItem, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionSendNotifications) {
		return nil, ErrUnauthorized
	}
	if isBroadSpecifier(input.RecipientSpecifier) && !Can(principal.Role, ActionBroadcast) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	var env notificationEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/notifications-crud", input, &env); err != nil {
		return nil, err
	}
	if env.Notification == nil {
		return nil, ErrMalformedResponse
	}

	// Whether the new notification reaches the sender's own list depends on
	// the specifier, so the server decides via a refetch.
	if err := s.FetchNotifications(ctx); err != nil {
		s.log.Warn().Err(err).Msg("notification refetch after send failed")
	}
	return env.Notification, nil
}

// isBroadSpecifier reports whether the specifier targets more than a single
// user.
func isBroadSpecifier(specifier string) bool {
	return specifier == domain.SpecifierAll || domain.ValidRole(specifier)
}

// MarkNotificationRead records the read state on the server and patches the
// cached item in place; no refetch. Marking twice is idempotent.
func (s *Session) MarkNotificationRead(ctx context.Context, notificationID primitive.ObjectID) error {
	principal := s.Principal()
	if principal == nil {
		return ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"notificationId": notificationID.Hex()}
	var env notificationEnvelope
	if err := s.gateway.Call(ctx, http.MethodPut, "/notifications-crud", payload, &env); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			s.notifications[i].Read = true
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// UnreadCount counts cached notifications not yet marked read.
func (s *Session) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
