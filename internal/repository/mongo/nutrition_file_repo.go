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

const nutritionFileCollectionName = "nutrition_files"

// mongoNutritionFileRepository implements repository.NutritionFileRepository.
type mongoNutritionFileRepository struct {
	collection *mongo.Collection
}

// NewMongoNutritionFileRepository creates a new instance.
func NewMongoNutritionFileRepository(db *mongo.Database) repository.NutritionFileRepository {
	return &mongoNutritionFileRepository{
		collection: db.Collection(nutritionFileCollectionName),
	}
}

func (r *mongoNutritionFileRepository) Create(ctx context.Context, file *domain.NutritionFile) (primitive.ObjectID, error) {
	if file.Name == "" || file.FileURL == "" {
		return primitive.NilObjectID, errors.New("file name and URL are required")
	}

	file.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, file)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoNutritionFileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionFile, error) {
	var file domain.NutritionFile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// nutritionFileQuery translates the filter into a mongo query. A ForTrainee
// listing matches files targeted at that trainee and, when SharedBy is set,
// that uploader's untargeted files as well; untargeted files from anyone else
// stay invisible. {"traineeId": nil} matches both absent and null fields.
func nutritionFileQuery(f repository.NutritionFileFilter) bson.M {
	filter := bson.M{}
	if f.UploadedBy != nil {
		filter["uploadedBy"] = *f.UploadedBy
	}
	if f.ForTrainee != nil {
		clauses := bson.A{bson.M{"traineeId": *f.ForTrainee}}
		if f.SharedBy != nil {
			clauses = append(clauses, bson.M{"uploadedBy": *f.SharedBy, "traineeId": nil})
		}
		filter["$or"] = clauses
	}
	return filter
}

// List returns files newest first.
func (r *mongoNutritionFileRepository) List(ctx context.Context, f repository.NutritionFileFilter) ([]domain.NutritionFile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, nutritionFileQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []domain.NutritionFile
	if err = cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *mongoNutritionFileRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureNutritionFileIndexes creates indexes for the nutrition files collection.
func EnsureNutritionFileIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uploadedBy", Value: 1}}},
		{
			Keys:    bson.D{{Key: "traineeId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
