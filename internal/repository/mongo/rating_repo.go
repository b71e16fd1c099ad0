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

const ratingCollectionName = "ratings"

// mongoRatingRepository implements repository.RatingRepository.
type mongoRatingRepository struct {
	collection *mongo.Collection
}

// NewMongoRatingRepository creates a new instance.
func NewMongoRatingRepository(db *mongo.Database) repository.RatingRepository {
	return &mongoRatingRepository{
		collection: db.Collection(ratingCollectionName),
	}
}

func (r *mongoRatingRepository) Create(ctx context.Context, rating *domain.Rating) (primitive.ObjectID, error) {
	if rating.Stars < 1 || rating.Stars > 5 {
		return primitive.NilObjectID, errors.New("stars must be between 1 and 5")
	}

	rating.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if rating.RatingTimestamp.IsZero() {
		rating.RatingTimestamp = now
	}
	rating.CreatedAt = now
	rating.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// List returns all ratings, newest first.
func (r *mongoRatingRepository) List(ctx context.Context) ([]domain.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ratingTimestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []domain.Rating
	if err = cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// EnsureRatingIndexes creates indexes for the ratings collection.
func EnsureRatingIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "ratedItemId", Value: 1}, {Key: "ratedItemType", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
