package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidStars     = errors.New("stars must be between 1 and 5")
	ErrInvalidRatedItem = errors.New("rated item does not exist")
	ErrTraineesOnly     = errors.New("only trainees may submit ratings")
)

// RatingInput carries the fields of a new rating.
type RatingInput struct {
	RatedItemID   primitive.ObjectID
	RatedItemType domain.RatedItemType
	Stars         int
	Comment       string
}

// RatingService handles rating submission (trainees) and listing (admins).
type RatingService interface {
	Submit(ctx context.Context, user *domain.User, input RatingInput) (*domain.Rating, error)
	// List returns all ratings, newest first, with user names resolved for
	// display.
	List(ctx context.Context) ([]domain.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	planRepo   repository.TrainingPlanRepository
	userRepo   repository.UserRepository
}

// NewRatingService creates a new instance of ratingService.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	planRepo repository.TrainingPlanRepository,
	userRepo repository.UserRepository,
) RatingService {
	return &ratingService{ratingRepo: ratingRepo, planRepo: planRepo, userRepo: userRepo}
}

func (s *ratingService) Submit(ctx context.Context, user *domain.User, input RatingInput) (*domain.Rating, error) {
	if !user.IsTrainee() {
		return nil, ErrTraineesOnly
	}
	if input.Stars < 1 || input.Stars > 5 {
		return nil, ErrInvalidStars
	}

	switch input.RatedItemType {
	case domain.RatedItemPlan:
		if _, err := s.planRepo.GetByID(ctx, input.RatedItemID); err != nil {
			return nil, ErrInvalidRatedItem
		}
	case domain.RatedItemTrainer:
		trainer, err := s.userRepo.GetByID(ctx, input.RatedItemID)
		if err != nil || !trainer.IsTrainer() {
			return nil, ErrInvalidRatedItem
		}
	default:
		return nil, errors.New("rated item type must be plan or trainer")
	}

	rating := &domain.Rating{
		RatedItemID:   input.RatedItemID,
		RatedItemType: input.RatedItemType,
		UserID:        user.ID,
		Stars:         input.Stars,
		Comment:       input.Comment,
	}
	id, err := s.ratingRepo.Create(ctx, rating)
	if err != nil {
		return nil, err
	}
	rating.ID = id
	rating.UserName = user.Name
	return rating, nil
}

func (s *ratingService) List(ctx context.Context) ([]domain.Rating, error) {
	ratings, err := s.ratingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	for i := range ratings {
		id := ratings[i].UserID
		name, ok := names[id]
		if !ok {
			if user, err := s.userRepo.GetByID(ctx, id); err == nil {
				name = user.Name
			}
			names[id] = name
		}
		ratings[i].UserName = name
	}
	return ratings, nil
}
