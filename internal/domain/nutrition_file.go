package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionFile is a link to an externally hosted nutrition document.
// TraineeID targets the file at a single trainee; nil means the file is
// visible to all of the uploader's trainees.
type NutritionFile struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	FileURL    string              `bson:"fileUrl" json:"fileUrl"`
	UploadedBy primitive.ObjectID  `bson:"uploadedBy" json:"uploadedBy"`
	TraineeID  *primitive.ObjectID `bson:"traineeId,omitempty" json:"traineeId,omitempty"`

	// UploadedByName is filled in by the service layer for display.
	UploadedByName string `bson:"-" json:"uploadedByName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
