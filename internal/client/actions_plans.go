package client

import (
	"context"
	"net/http"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanInput carries the mutable plan fields for create and update.
type PlanInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"durationMonths"`
}

// CreatePlan adds a plan and appends it to the cached collection.
// Admin only; a non-admin fails before any network call.
func (s *Session) CreatePlan(ctx context.Context, input PlanInput) (*domain.TrainingPlan, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManagePlans) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	var env planEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/admin-manage-plan", input, &env); err != nil {
		return nil, err
	}
	if env.Plan == nil {
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	s.plans = append(s.plans, *env.Plan)
	s.mu.Unlock()
	return env.Plan, nil
}

// UpdatePlan edits a plan and replaces it in the cached collection.
func (s *Session) UpdatePlan(ctx context.Context, planID primitive.ObjectID, input PlanInput) (*domain.TrainingPlan, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManagePlans) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := struct {
		PlanID string `json:"planId"`
		PlanInput
	}{planID.Hex(), input}

	var env planEnvelope
	if err := s.gateway.Call(ctx, http.MethodPut, "/admin-manage-plan", payload, &env); err != nil {
		return nil, err
	}
	if env.Plan == nil {
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	for i := range s.plans {
		if s.plans[i].ID == env.Plan.ID {
			s.plans[i] = *env.Plan
			break
		}
	}
	s.mu.Unlock()
	return env.Plan, nil
}

// DeletePlan removes a plan from the server and the cached collection. Users
// holding a reference to the plan keep their dangling reference.
func (s *Session) DeletePlan(ctx context.Context, planID primitive.ObjectID) error {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManagePlans) {
		return ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"planId": planID.Hex()}
	if err := s.gateway.Call(ctx, http.MethodDelete, "/admin-manage-plan", payload, nil); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.plans {
		if s.plans[i].ID == planID {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
