package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpecifierAll targets a notification at every user.
const SpecifierAll = "all"

// NotificationItem is a broadcast-or-targeted notification. The recipient
// specifier is either a user ID (hex), the literal "all", or a role name;
// the notification logically fans out to every matching user.
//
// Read state is tracked per recipient (see NotificationRead), so the same
// notification can be read for one user and unread for another. The Read
// field here is computed for the requesting user and never stored on the
// notification itself.
type NotificationItem struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientSpecifier string             `bson:"recipientSpecifier" json:"recipientSpecifier"`
	Title              string             `bson:"title" json:"title"`
	Message            string             `bson:"message" json:"message"`
	SentAt             time.Time          `bson:"sentAt" json:"sentAt"`
	Link               string             `bson:"link,omitempty" json:"link,omitempty"`

	Read bool `bson:"-" json:"read"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NotificationRead is the join record marking a notification as read by one
// recipient. The (NotificationID, UserID) pair is unique.
type NotificationRead struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NotificationID primitive.ObjectID `bson:"notificationId" json:"notificationId"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	ReadAt         time.Time          `bson:"readAt" json:"readAt"`
}
