package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidSpecifier     = errors.New("recipient specifier must be a user ID, a role, or \"all\"")
	ErrNotRecipient         = errors.New("notification is not addressed to this user")
)

// NotificationInput carries the fields of an outgoing notification.
type NotificationInput struct {
	RecipientSpecifier string
	Title              string
	Message            string
	Link               string
}

// NotificationService handles sending and reading notifications.
// Broad targeting ("all" or a role) is admin-only; trainers may notify a
// single one of their own trainees.
type NotificationService interface {
	ListFor(ctx context.Context, user *domain.User) ([]domain.NotificationItem, error)
	Send(ctx context.Context, sender *domain.User, input NotificationInput) (*domain.NotificationItem, error)
	// MarkRead records the per-recipient read state. Marking twice is
	// idempotent; the second call re-confirms read=true.
	MarkRead(ctx context.Context, user *domain.User, notificationID primitive.ObjectID) (*domain.NotificationItem, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

// ListFor returns the user's notifications, newest first, with the read flag
// computed from the per-recipient read records.
func (s *notificationService) ListFor(ctx context.Context, user *domain.User) ([]domain.NotificationItem, error) {
	notifications, err := s.notificationRepo.ListForRecipient(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(notifications))
	for i, n := range notifications {
		ids[i] = n.ID
	}
	readSet, err := s.notificationRepo.ReadSet(ctx, user.ID, ids)
	if err != nil {
		return nil, err
	}
	for i := range notifications {
		notifications[i].Read = readSet[notifications[i].ID]
	}
	return notifications, nil
}

func (s *notificationService) Send(ctx context.Context, sender *domain.User, input NotificationInput) (*domain.NotificationItem, error) {
	if input.Title == "" || input.Message == "" {
		return nil, errors.New("notification title and message are required")
	}
	if err := s.validateSpecifier(ctx, sender, input.RecipientSpecifier); err != nil {
		return nil, err
	}

	n := &domain.NotificationItem{
		RecipientSpecifier: input.RecipientSpecifier,
		Title:              input.Title,
		Message:            input.Message,
		Link:               input.Link,
	}
	id, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = id
	return n, nil
}

// validateSpecifier enforces who may target whom: admins target anything
// valid, trainers target exactly one of their own trainees.
func (s *notificationService) validateSpecifier(ctx context.Context, sender *domain.User, specifier string) error {
	if specifier == "" {
		return ErrInvalidSpecifier
	}

	if sender.IsAdmin() {
		if specifier == domain.SpecifierAll || domain.ValidRole(specifier) {
			return nil
		}
		id, err := primitive.ObjectIDFromHex(specifier)
		if err != nil {
			return ErrInvalidSpecifier
		}
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return ErrInvalidSpecifier
		}
		return nil
	}

	if !sender.IsTrainer() {
		return ErrNotAllowed
	}
	id, err := primitive.ObjectIDFromHex(specifier)
	if err != nil {
		// Broad targeting is reserved for admins.
		return ErrNotAllowed
	}
	trainee, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return ErrInvalidSpecifier
	}
	if !trainee.IsTrainee() || trainee.TrainerID == nil || *trainee.TrainerID != sender.ID {
		return ErrNotYourTrainee
	}
	return nil
}

func (s *notificationService) MarkRead(ctx context.Context, user *domain.User, notificationID primitive.ObjectID) (*domain.NotificationItem, error) {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	// Only an actual recipient can mark it read.
	spec := n.RecipientSpecifier
	if spec != domain.SpecifierAll && spec != string(user.Role) && spec != user.ID.Hex() {
		return nil, ErrNotRecipient
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID, user.ID); err != nil {
		return nil, err
	}
	n.Read = true
	return n, nil
}
