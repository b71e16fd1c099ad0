package service

import (
	"context"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stub repositories shared by the service tests.

type stubUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *stubUserRepo) add(user *domain.User) *domain.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return user
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.PhoneNumber == user.PhoneNumber {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByPhoneOrEmail(_ context.Context, value string) (*domain.User, error) {
	for _, user := range r.users {
		if user.PhoneNumber == value || (user.Email != "" && user.Email == value) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type stubPlanRepo struct {
	plans map[primitive.ObjectID]*domain.TrainingPlan
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *stubPlanRepo) add(plan *domain.TrainingPlan) *domain.TrainingPlan {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	clone := *plan
	r.plans[plan.ID] = &clone
	return plan
}

func (r *stubPlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	clone := *plan
	r.plans[plan.ID] = &clone
	return plan.ID, nil
}

func (r *stubPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *plan
	return &clone, nil
}

func (r *stubPlanRepo) List(_ context.Context) ([]domain.TrainingPlan, error) {
	out := make([]domain.TrainingPlan, 0, len(r.plans))
	for _, plan := range r.plans {
		out = append(out, *plan)
	}
	return out, nil
}

func (r *stubPlanRepo) Update(_ context.Context, plan *domain.TrainingPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *plan
	r.plans[plan.ID] = &clone
	return nil
}

func (r *stubPlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type readKey struct {
	notification primitive.ObjectID
	user         primitive.ObjectID
}

type stubNotificationRepo struct {
	notifications map[primitive.ObjectID]*domain.NotificationItem
	reads         map[readKey]bool
	markCalls     int
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{
		notifications: make(map[primitive.ObjectID]*domain.NotificationItem),
		reads:         make(map[readKey]bool),
	}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.NotificationItem) (primitive.ObjectID, error) {
	n.ID = primitive.NewObjectID()
	n.SentAt = time.Now()
	clone := *n
	r.notifications[n.ID] = &clone
	return n.ID, nil
}

func (r *stubNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.NotificationItem, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNotificationRepo) ListForRecipient(_ context.Context, userID primitive.ObjectID, role domain.Role) ([]domain.NotificationItem, error) {
	var out []domain.NotificationItem
	for _, n := range r.notifications {
		spec := n.RecipientSpecifier
		if spec == domain.SpecifierAll || spec == string(role) || spec == userID.Hex() {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, notificationID, userID primitive.ObjectID) error {
	r.markCalls++
	r.reads[readKey{notificationID, userID}] = true
	return nil
}

func (r *stubNotificationRepo) ReadSet(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool)
	for _, id := range ids {
		if r.reads[readKey{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

type stubRatingRepo struct {
	ratings []domain.Rating
}

func (r *stubRatingRepo) Create(_ context.Context, rating *domain.Rating) (primitive.ObjectID, error) {
	rating.ID = primitive.NewObjectID()
	r.ratings = append(r.ratings, *rating)
	return rating.ID, nil
}

func (r *stubRatingRepo) List(_ context.Context) ([]domain.Rating, error) {
	return append([]domain.Rating(nil), r.ratings...), nil
}

// Helpers to build common principals.

func activeUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:          primitive.NewObjectID(),
		PhoneNumber: "+2010000" + primitive.NewObjectID().Hex()[18:],
		Country:     "EG",
		Role:        role,
		Status:      domain.StatusActive,
	}
}

func traineeOf(trainer *domain.User) *domain.User {
	trainee := activeUser(domain.RoleTrainee)
	trainerID := trainer.ID
	trainee.TrainerID = &trainerID
	return trainee
}
