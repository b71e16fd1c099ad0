package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleTrainee Role = "trainee"
)

// ValidRole reports whether s names one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleTrainer, RoleTrainee:
		return true
	}
	return false
}

// AccountStatus tracks the moderation state of an account.
// New signups start as pending until an admin approves or rejects them.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusActive   AccountStatus = "active"
	StatusRejected AccountStatus = "rejected"
)

// User represents an account in the system (admin, trainer or trainee).
// TrainerID and SelectedPlanID are only ever set on trainees; SelectedPlanID
// is a weak reference — the referenced plan may have been deleted.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"` // Unique, the primary credential
	Country      string             `bson:"country" json:"country"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Status       AccountStatus      `bson:"status" json:"status"`

	// --- Trainee-specific ---
	TrainerID      *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	SelectedPlanID *primitive.ObjectID `bson:"selectedPlanId,omitempty" json:"selectedPlanId,omitempty"`

	// SuperAdmin marks the one reserved admin account. Its role and status
	// can never be changed through the management endpoints.
	SuperAdmin bool `bson:"superAdmin,omitempty" json:"superAdmin,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}
