package client

import (
	"errors"

	"fitcoach/coaching-app/internal/domain"
)

// ErrUnauthorized is returned by action handlers whose pre-check fails; no
// network call is made in that case. The server re-enforces every rule
// independently.
var ErrUnauthorized = errors.New("the current user is not allowed to perform this action")

// Action names a client-side permission checked before a call is attempted.
type Action string

const (
	ActionManageAccounts    Action = "manage-accounts"
	ActionManagePlans       Action = "manage-plans"
	ActionManageMedia       Action = "manage-media"
	ActionManageSchedules   Action = "manage-schedules"
	ActionSendNotifications Action = "send-notifications"
	ActionBroadcast         Action = "broadcast"
	ActionSubmitRating      Action = "submit-rating"
	ActionViewRatings       Action = "view-ratings"
	ActionChat              Action = "chat"
)

// permissions is the client-side pre-check table. Absence means denied.
var permissions = map[domain.Role]map[Action]bool{
	domain.RoleAdmin: {
		ActionManageAccounts:    true,
		ActionManagePlans:       true,
		ActionManageMedia:       true,
		ActionManageSchedules:   true,
		ActionSendNotifications: true,
		ActionBroadcast:         true,
		ActionViewRatings:       true,
	},
	domain.RoleTrainer: {
		ActionManageMedia:       true,
		ActionManageSchedules:   true,
		ActionSendNotifications: true,
		ActionChat:              true,
	},
	domain.RoleTrainee: {
		ActionSubmitRating: true,
		ActionChat:         true,
	},
}

// Can reports whether the role may attempt the action.
func Can(role domain.Role, action Action) bool {
	return permissions[role][action]
}
