package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrScheduleItemNotFound = errors.New("schedule item not found")
	ErrNotYourTrainee       = errors.New("trainee is not assigned to this trainer")
)

// ScheduleItemInput carries the fields of a new schedule entry.
type ScheduleItemInput struct {
	TraineeID primitive.ObjectID
	Day       string
	Exercises string
	Notes     string
}

// ScheduleItemPatch carries the mutable fields of an existing entry.
// Nil means "leave unchanged"; the owning trainee can never be moved.
type ScheduleItemPatch struct {
	Day       *string
	Exercises *string
	Notes     *string
}

// ScheduleService handles trainee workout schedules. Trainers may only
// touch schedules of their own trainees; admins may touch any.
type ScheduleService interface {
	ForTrainee(ctx context.Context, requester *domain.User, traineeID primitive.ObjectID) ([]domain.TraineeScheduleItem, error)
	Save(ctx context.Context, requester *domain.User, input ScheduleItemInput) (*domain.TraineeScheduleItem, error)
	Update(ctx context.Context, requester *domain.User, itemID primitive.ObjectID, patch ScheduleItemPatch) (*domain.TraineeScheduleItem, error)
	Delete(ctx context.Context, requester *domain.User, itemID primitive.ObjectID) error
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	userRepo     repository.UserRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, userRepo repository.UserRepository) ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo, userRepo: userRepo}
}

// canManage reports whether the requester may touch this trainee's schedule.
func (s *scheduleService) canManage(ctx context.Context, requester *domain.User, traineeID primitive.ObjectID) error {
	if requester.IsAdmin() {
		return nil
	}
	if requester.IsTrainee() {
		// Trainees only read their own schedule; writes are blocked at the
		// API layer.
		if requester.ID == traineeID {
			return nil
		}
		return ErrNotAllowed
	}
	if !requester.IsTrainer() {
		return ErrNotAllowed
	}

	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if trainee.TrainerID == nil || *trainee.TrainerID != requester.ID {
		return ErrNotYourTrainee
	}
	return nil
}

func (s *scheduleService) ForTrainee(ctx context.Context, requester *domain.User, traineeID primitive.ObjectID) ([]domain.TraineeScheduleItem, error) {
	if err := s.canManage(ctx, requester, traineeID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetByTraineeID(ctx, traineeID)
}

func (s *scheduleService) Save(ctx context.Context, requester *domain.User, input ScheduleItemInput) (*domain.TraineeScheduleItem, error) {
	if err := s.canManage(ctx, requester, input.TraineeID); err != nil {
		return nil, err
	}

	item := &domain.TraineeScheduleItem{
		TraineeID: input.TraineeID,
		Day:       input.Day,
		Exercises: input.Exercises,
		Notes:     input.Notes,
	}
	id, err := s.scheduleRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

func (s *scheduleService) Update(ctx context.Context, requester *domain.User, itemID primitive.ObjectID, patch ScheduleItemPatch) (*domain.TraineeScheduleItem, error) {
	item, err := s.scheduleRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}
	if err := s.canManage(ctx, requester, item.TraineeID); err != nil {
		return nil, err
	}

	if patch.Day != nil {
		item.Day = *patch.Day
	}
	if patch.Exercises != nil {
		item.Exercises = *patch.Exercises
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}

	if err := s.scheduleRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *scheduleService) Delete(ctx context.Context, requester *domain.User, itemID primitive.ObjectID) error {
	item, err := s.scheduleRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleItemNotFound
		}
		return err
	}
	if err := s.canManage(ctx, requester, item.TraineeID); err != nil {
		return err
	}
	return s.scheduleRepo.Delete(ctx, itemID)
}
