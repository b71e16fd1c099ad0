package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TraineeScheduleItem is one entry of a trainee's workout schedule.
// A trainee's schedule is ordered by creation time; the same day label may
// appear more than once.
type TraineeScheduleItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TraineeID primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	Day       string             `bson:"day" json:"day"` // e.g. "Monday", "Day 1"
	Exercises string             `bson:"exercises" json:"exercises"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
