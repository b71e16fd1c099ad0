package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatedItemType distinguishes what a rating targets.
type RatedItemType string

const (
	RatedItemPlan    RatedItemType = "plan"
	RatedItemTrainer RatedItemType = "trainer"
)

// Rating is a 1–5 star review of a plan or a trainer, submitted by a trainee.
type Rating struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RatedItemID     primitive.ObjectID `bson:"ratedItemId" json:"ratedItemId"`
	RatedItemType   RatedItemType      `bson:"ratedItemType" json:"ratedItemType"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Stars           int                `bson:"stars" json:"stars"` // 1..5
	Comment         string             `bson:"comment,omitempty" json:"comment,omitempty"`
	RatingTimestamp time.Time          `bson:"ratingTimestamp" json:"ratingTimestamp"`

	// UserName is filled in for admin display; not stored.
	UserName string `bson:"-" json:"userName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
