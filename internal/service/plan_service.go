package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound    = errors.New("training plan not found")
	ErrInvalidPlan     = errors.New("plan price must be non-negative and duration at least one month")
	ErrPlanNameMissing = errors.New("plan name is required")
)

// PlanInput carries the mutable plan fields.
type PlanInput struct {
	Name           string
	Description    string
	Price          float64
	DurationMonths int
}

func (p PlanInput) validate() error {
	if p.Name == "" {
		return ErrPlanNameMissing
	}
	if p.Price < 0 || p.DurationMonths < 1 {
		return ErrInvalidPlan
	}
	return nil
}

// PlanService handles training plan CRUD. Role enforcement (admin only for
// mutations) happens at the API layer; the service validates the data.
type PlanService interface {
	List(ctx context.Context) ([]domain.TrainingPlan, error)
	Create(ctx context.Context, input PlanInput) (*domain.TrainingPlan, error)
	Update(ctx context.Context, id primitive.ObjectID, input PlanInput) (*domain.TrainingPlan, error)
	// Delete removes a plan. Trainees keeping a reference to it are left
	// untouched; the dangling reference is tolerated by readers.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type planService struct {
	planRepo repository.TrainingPlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.TrainingPlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) List(ctx context.Context) ([]domain.TrainingPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *planService) Create(ctx context.Context, input PlanInput) (*domain.TrainingPlan, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	plan := &domain.TrainingPlan{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		DurationMonths: input.DurationMonths,
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) Update(ctx context.Context, id primitive.ObjectID, input PlanInput) (*domain.TrainingPlan, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan.Name = input.Name
	plan.Description = input.Description
	plan.Price = input.Price
	plan.DurationMonths = input.DurationMonths

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}
