package mongo

import (
	"context"
	"errors"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	notificationCollectionName     = "notifications"
	notificationReadCollectionName = "notification_reads"
)

// mongoNotificationRepository implements repository.NotificationRepository.
// Read state lives in a separate join collection keyed by
// (notificationId, userId), so one notification can be read for one
// recipient and unread for another.
type mongoNotificationRepository struct {
	collection *mongo.Collection
	reads      *mongo.Collection
}

// NewMongoNotificationRepository creates a new instance.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
		reads:      db.Collection(notificationReadCollectionName),
	}
}

func (r *mongoNotificationRepository) Create(ctx context.Context, n *domain.NotificationItem) (primitive.ObjectID, error) {
	if n.RecipientSpecifier == "" || n.Title == "" {
		return primitive.NilObjectID, errors.New("recipient specifier and title are required")
	}

	n.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if n.SentAt.IsZero() {
		n.SentAt = now
	}
	n.CreatedAt = now
	n.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, n)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoNotificationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NotificationItem, error) {
	var n domain.NotificationItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// ListForRecipient returns notifications addressed to the user directly, to
// their role, or to everyone, newest first.
func (r *mongoNotificationRepository) ListForRecipient(ctx context.Context, userID primitive.ObjectID, role domain.Role) ([]domain.NotificationItem, error) {
	filter := bson.M{"recipientSpecifier": bson.M{"$in": bson.A{
		userID.Hex(),
		string(role),
		domain.SpecifierAll,
	}}}

	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []domain.NotificationItem
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead records the read state as an upsert; repeating the call for the
// same (notification, user) pair is a no-op thanks to the unique index.
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, notificationID, userID primitive.ObjectID) error {
	filter := bson.M{"notificationId": notificationID, "userId": userID}
	update := bson.M{"$setOnInsert": bson.M{
		"notificationId": notificationID,
		"userId":         userID,
		"readAt":         time.Now().UTC(),
	}}

	_, err := r.reads.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Lost a race with an identical upsert; the record exists, which is
		// exactly the state we wanted.
		return nil
	}
	return err
}

// ReadSet reports which of the given notifications the user has read.
func (r *mongoNotificationRepository) ReadSet(ctx context.Context, userID primitive.ObjectID, notificationIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	read := make(map[primitive.ObjectID]bool, len(notificationIDs))
	if len(notificationIDs) == 0 {
		return read, nil
	}

	filter := bson.M{"userId": userID, "notificationId": bson.M{"$in": notificationIDs}}
	cursor, err := r.reads.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.NotificationRead
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	for _, rec := range records {
		read[rec.NotificationID] = true
	}
	return read, nil
}

// EnsureNotificationIndexes creates indexes for notifications and their
// read records.
func EnsureNotificationIndexes(ctx context.Context, notifications, reads *mongo.Collection) error {
	_, err := notifications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipientSpecifier", Value: 1}, {Key: "sentAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = reads.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "notificationId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
