package client

import (
	"errors"

	"fitcoach/coaching-app/internal/domain"
)

// ErrMalformedResponse reports a success status whose body is missing the
// expected envelope field.
var ErrMalformedResponse = errors.New("client: malformed server response")

// Response envelopes. Every endpoint wraps its result in a single named
// field; errors use {"message": ...} and are handled by the gateway.

type userEnvelope struct {
	User *domain.User `json:"user"`
}

type usersEnvelope struct {
	Users []domain.User `json:"users"`
}

type planEnvelope struct {
	Plan *domain.TrainingPlan `json:"plan"`
}

type plansEnvelope struct {
	Plans []domain.TrainingPlan `json:"plans"`
}

type videoEnvelope struct {
	Video *domain.TrainingVideo `json:"video"`
}

type videosEnvelope struct {
	Videos []domain.TrainingVideo `json:"videos"`
}

type fileEnvelope struct {
	File *domain.NutritionFile `json:"file"`
}

type filesEnvelope struct {
	Files []domain.NutritionFile `json:"files"`
}

type uploadEnvelope struct {
	Upload *UploadTicket `json:"upload"`
}

type scheduleEnvelope struct {
	Schedule []domain.TraineeScheduleItem `json:"schedule"`
}

type scheduleItemEnvelope struct {
	Item *domain.TraineeScheduleItem `json:"item"`
}

type messageEnvelope struct {
	Message *domain.Message `json:"message"`
}

type messagesEnvelope struct {
	Messages []domain.Message `json:"messages"`
}

type notificationEnvelope struct {
	Notification *domain.NotificationItem `json:"notification"`
}

type notificationsEnvelope struct {
	Notifications []domain.NotificationItem `json:"notifications"`
}

type ratingEnvelope struct {
	Rating *domain.Rating `json:"rating"`
}

type ratingsEnvelope struct {
	Ratings []domain.Rating `json:"ratings"`
}

// UploadTicket mirrors the server's presigned upload response.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	ObjectKey string `json:"objectKey"`
}
