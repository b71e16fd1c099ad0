package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingVideo is a link to an externally hosted video, uploaded by an
// admin or a trainer. Only the uploader or an admin may delete it.
type TrainingVideo struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	VideoURL   string             `bson:"videoUrl" json:"videoUrl"`
	UploadedBy primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`

	// UploadedByName is filled in by the service layer for display; it is
	// not stored with the video.
	UploadedByName string `bson:"-" json:"uploadedByName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
