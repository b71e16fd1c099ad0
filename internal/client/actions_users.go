package client

import (
	"context"
	"net/http"

	"fitcoach/coaching-app/internal/domain"
)

// UserUpdate carries one account mutation. Nil fields are left unchanged.
// Status, role and trainer linkage are admin moves; profile fields may also
// come from the account owner.
type UserUpdate struct {
	UserID         string                `json:"userId"`
	Status         *domain.AccountStatus `json:"status,omitempty"`
	Role           *domain.Role          `json:"role,omitempty"`
	TrainerID      *string               `json:"trainerId,omitempty"`
	SelectedPlanID *string               `json:"selectedPlanId,omitempty"`
	Name           *string               `json:"name,omitempty"`
	Email          *string               `json:"email,omitempty"`
	Country        *string               `json:"country,omitempty"`
	PhoneNumber    *string               `json:"phoneNumber,omitempty"`
}

func (u UserUpdate) touchesAdminFields() bool {
	return u.Status != nil || u.Role != nil || u.TrainerID != nil
}

// ManageUser applies an account mutation and reconciles the users collection
// in place. If the mutation targets the principal's own record the principal
// is updated as well.
func (s *Session) ManageUser(ctx context.Context, update UserUpdate) (*domain.User, error) {
	principal := s.Principal()
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if update.touchesAdminFields() && !Can(principal.Role, ActionManageAccounts) {
		return nil, ErrUnauthorized
	}
	if !update.touchesAdminFields() &&
		!Can(principal.Role, ActionManageAccounts) &&
		update.UserID != principal.ID.Hex() {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	var env userEnvelope
	if err := s.gateway.Call(ctx, http.MethodPut, "/admin-manage-user", update, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == env.User.ID {
			s.users[i] = *env.User
			break
		}
	}
	if s.principal != nil && s.principal.ID == env.User.ID {
		s.principal = env.User
	}
	s.mu.Unlock()

	return env.User, nil
}

// ApproveUser activates a pending account.
func (s *Session) ApproveUser(ctx context.Context, userID string) (*domain.User, error) {
	status := domain.StatusActive
	return s.ManageUser(ctx, UserUpdate{UserID: userID, Status: &status})
}

// RejectUser marks a pending account as rejected.
func (s *Session) RejectUser(ctx context.Context, userID string) (*domain.User, error) {
	status := domain.StatusRejected
	return s.ManageUser(ctx, UserUpdate{UserID: userID, Status: &status})
}

// AssignTrainer links a trainee to a trainer.
func (s *Session) AssignTrainer(ctx context.Context, traineeID, trainerID string) (*domain.User, error) {
	return s.ManageUser(ctx, UserUpdate{UserID: traineeID, TrainerID: &trainerID})
}

// MyTrainees filters the cached users down to trainees assigned to the
// principal. Trainers call this after FetchUsers; the server returns all
// users and the narrowing is client-side.
func (s *Session) MyTrainees() []domain.User {
	principal := s.Principal()
	if principal == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var trainees []domain.User
	for _, u := range s.users {
		if u.IsTrainee() && u.TrainerID != nil && *u.TrainerID == principal.ID {
			trainees = append(trainees, u)
		}
	}
	return trainees
}
