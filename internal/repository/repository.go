package repository

import (
	"context"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetByPhoneOrEmail looks a user up by either credential field.
	GetByPhoneOrEmail(ctx context.Context, value string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// TrainingPlanRepository defines the interface for plan data.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	List(ctx context.Context) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingVideoRepository defines the interface for training video data.
type TrainingVideoRepository interface {
	Create(ctx context.Context, video *domain.TrainingVideo) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingVideo, error)
	// List returns videos newest first; uploadedBy narrows to one uploader.
	List(ctx context.Context, uploadedBy *primitive.ObjectID) ([]domain.TrainingVideo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NutritionFileFilter narrows a nutrition file listing. Zero value lists all.
type NutritionFileFilter struct {
	// UploadedBy narrows to one uploader's files.
	UploadedBy *primitive.ObjectID
	// ForTrainee matches files targeted at this trainee.
	ForTrainee *primitive.ObjectID
	// SharedBy widens a ForTrainee listing with this uploader's untargeted
	// files, the ones addressed to all of their trainees. Nil means targeted
	// files only.
	SharedBy *primitive.ObjectID
}

// NutritionFileRepository defines the interface for nutrition file data.
type NutritionFileRepository interface {
	Create(ctx context.Context, file *domain.NutritionFile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionFile, error)
	List(ctx context.Context, filter NutritionFileFilter) ([]domain.NutritionFile, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ScheduleRepository defines the interface for trainee schedule items.
type ScheduleRepository interface {
	Create(ctx context.Context, item *domain.TraineeScheduleItem) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TraineeScheduleItem, error)
	// GetByTraineeID returns the trainee's items ordered by creation time.
	GetByTraineeID(ctx context.Context, traineeID primitive.ObjectID) ([]domain.TraineeScheduleItem, error)
	Update(ctx context.Context, item *domain.TraineeScheduleItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MessageRepository defines the interface for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	// GetConversation returns all messages between the two users, oldest first.
	GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error)
	// MarkConversationRead flags every message from sender to receiver as read.
	MarkConversationRead(ctx context.Context, senderID, receiverID primitive.ObjectID) error
}

// NotificationRepository defines the interface for notifications and their
// per-recipient read records.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.NotificationItem) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NotificationItem, error)
	// ListForRecipient returns notifications whose specifier matches the
	// user's ID, their role, or "all", newest first.
	ListForRecipient(ctx context.Context, userID primitive.ObjectID, role domain.Role) ([]domain.NotificationItem, error)
	// MarkRead records that userID has read the notification. Calling it
	// again for the same pair is a no-op.
	MarkRead(ctx context.Context, notificationID, userID primitive.ObjectID) error
	// ReadSet reports which of the given notifications userID has read.
	ReadSet(ctx context.Context, userID primitive.ObjectID, notificationIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
}

// RatingRepository defines the interface for ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Rating, error)
}
