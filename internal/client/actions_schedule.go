package client

import (
	"context"
	"net/http"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleItemInput carries the fields of a new schedule entry.
type ScheduleItemInput struct {
	TraineeID primitive.ObjectID
	Day       string
	Exercises string
	Notes     string
}

// SaveScheduleItem creates a schedule entry and refetches the owning
// trainee's full schedule, since ordering and completeness are
// server-determined. Trainer and admin only.
func (s *Session) SaveScheduleItem(ctx context.Context, input ScheduleItemInput) (*domain.TraineeScheduleItem, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageSchedules) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := struct {
		TraineeID string `json:"traineeId"`
		Day       string `json:"day"`
		Exercises string `json:"exercises"`
		Notes     string `json:"notes,omitempty"`
	}{input.TraineeID.Hex(), input.Day, input.Exercises, input.Notes}

	var env scheduleItemEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/trainee-schedules", payload, &env); err != nil {
		return nil, err
	}
	if env.Item == nil {
		return nil, ErrMalformedResponse
	}

	if err := s.FetchSchedule(ctx, input.TraineeID); err != nil {
		s.log.Warn().Err(err).Msg("schedule refetch after create failed")
	}
	return env.Item, nil
}

// ScheduleItemPatch carries the mutable fields of an existing entry; nil
// leaves a field unchanged.
type ScheduleItemPatch struct {
	Day       *string `json:"day,omitempty"`
	Exercises *string `json:"exercises,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// UpdateScheduleItem edits an entry and refetches the owning trainee's
// schedule.
func (s *Session) UpdateScheduleItem(ctx context.Context, itemID primitive.ObjectID, patch ScheduleItemPatch) (*domain.TraineeScheduleItem, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageSchedules) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := struct {
		ItemID string `json:"itemId"`
		ScheduleItemPatch
	}{itemID.Hex(), patch}

	var env scheduleItemEnvelope
	if err := s.gateway.Call(ctx, http.MethodPut, "/trainee-schedules", payload, &env); err != nil {
		return nil, err
	}
	if env.Item == nil {
		return nil, ErrMalformedResponse
	}

	if err := s.FetchSchedule(ctx, env.Item.TraineeID); err != nil {
		s.log.Warn().Err(err).Msg("schedule refetch after update failed")
	}
	return env.Item, nil
}

// DeleteScheduleItem removes an entry. When the item's owning trainee is
// determinable from the cached schedule, the schedule is refetched so the
// collection reflects server state rather than a local removal; otherwise
// the item is removed locally.
func (s *Session) DeleteScheduleItem(ctx context.Context, itemID primitive.ObjectID) error {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageSchedules) {
		return ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	var owner primitive.ObjectID
	s.mu.Lock()
	for _, item := range s.schedule {
		if item.ID == itemID {
			owner = item.TraineeID
			break
		}
	}
	s.mu.Unlock()

	payload := map[string]string{"itemId": itemID.Hex()}
	if err := s.gateway.Call(ctx, http.MethodDelete, "/trainee-schedules", payload, nil); err != nil {
		return err
	}

	if !owner.IsZero() {
		if err := s.FetchSchedule(ctx, owner); err != nil {
			s.log.Warn().Err(err).Msg("schedule refetch after delete failed")
		}
		return nil
	}

	s.mu.Lock()
	for i := range s.schedule {
		if s.schedule[i].ID == itemID {
			s.schedule = append(s.schedule[:i], s.schedule[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
