package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrNotAllowed          = errors.New("operation not allowed for this user")
	ErrSuperAdminImmutable = errors.New("the reserved admin account cannot be modified")
	ErrTrainerSelfLink     = errors.New("a trainer cannot be assigned to themselves")
	ErrInvalidTrainer      = errors.New("assigned trainer does not exist or is not a trainer")
	ErrInvalidRole         = errors.New("invalid role")
)

// AccountUpdate carries the mutable user fields. Nil pointers mean "leave
// unchanged". Status, Role and TrainerID are admin-only; the rest are
// self-editable profile fields. Identifier, credential and super-admin flag
// are never accepted through this path.
type AccountUpdate struct {
	Status         *domain.AccountStatus
	Role           *domain.Role
	TrainerID      *primitive.ObjectID
	SelectedPlanID *primitive.ObjectID
	Name           *string
	Email          *string
	Country        *string
	PhoneNumber    *string
}

func (u AccountUpdate) touchesAdminFields() bool {
	return u.Status != nil || u.Role != nil || u.TrainerID != nil
}

// AccountService handles listing and mutating user accounts.
type AccountService interface {
	List(ctx context.Context) ([]domain.User, error)
	// Update applies an AccountUpdate on behalf of the requester, enforcing
	// the admin/self split and the super-admin guard. Returns the updated user.
	Update(ctx context.Context, requester *domain.User, targetID primitive.ObjectID, upd AccountUpdate) (*domain.User, error)
}

type accountService struct {
	userRepo repository.UserRepository
}

// NewAccountService creates a new instance of accountService.
func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo}
}

func (s *accountService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *accountService) Update(ctx context.Context, requester *domain.User, targetID primitive.ObjectID, upd AccountUpdate) (*domain.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Status, role and trainer linkage are admin-only. Profile fields may
	// also be edited by the account owner.
	if upd.touchesAdminFields() && !requester.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if !requester.IsAdmin() && requester.ID != targetID {
		return nil, ErrNotAllowed
	}

	// The reserved admin account is excluded from role/status mutation.
	if target.SuperAdmin && upd.touchesAdminFields() {
		return nil, ErrSuperAdminImmutable
	}

	if upd.Role != nil {
		if !domain.ValidRole(string(*upd.Role)) {
			return nil, ErrInvalidRole
		}
		target.Role = *upd.Role
		// Only trainees carry a trainer link and a selected plan.
		if target.Role != domain.RoleTrainee {
			target.TrainerID = nil
			target.SelectedPlanID = nil
		}
	}
	if upd.Status != nil {
		target.Status = *upd.Status
	}
	if upd.TrainerID != nil {
		if !target.IsTrainee() {
			return nil, ErrNotAllowed
		}
		if *upd.TrainerID == targetID {
			return nil, ErrTrainerSelfLink
		}
		trainer, err := s.userRepo.GetByID(ctx, *upd.TrainerID)
		if err != nil || !trainer.IsTrainer() {
			return nil, ErrInvalidTrainer
		}
		id := *upd.TrainerID
		target.TrainerID = &id
	}
	if upd.SelectedPlanID != nil {
		if !target.IsTrainee() {
			return nil, ErrNotAllowed
		}
		id := *upd.SelectedPlanID
		target.SelectedPlanID = &id
	}

	if upd.Name != nil {
		target.Name = *upd.Name
	}
	if upd.Email != nil {
		target.Email = *upd.Email
	}
	if upd.Country != nil {
		target.Country = *upd.Country
	}
	if upd.PhoneNumber != nil && *upd.PhoneNumber != "" {
		target.PhoneNumber = *upd.PhoneNumber
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	target.PasswordHash = ""
	return target, nil
}
