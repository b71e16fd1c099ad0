package client

import (
	"context"
	"net/http"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddVideo registers a training video link and prepends it to the cached
// collection (videos are shown most-recent-first). Admin and trainer only.
func (s *Session) AddVideo(ctx context.Context, title, videoURL string) (*domain.TrainingVideo, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageMedia) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"title": title, "videoUrl": videoURL}
	var env videoEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/training-videos", payload, &env); err != nil {
		return nil, err
	}
	if env.Video == nil {
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	s.videos = append([]domain.TrainingVideo{*env.Video}, s.videos...)
	s.mu.Unlock()
	return env.Video, nil
}

// DeleteVideo removes a video. Ownership is not checked client-side; the
// server rejects deletes by anyone but the uploader or an admin.
func (s *Session) DeleteVideo(ctx context.Context, videoID primitive.ObjectID) error {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageMedia) {
		return ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"videoId": videoID.Hex()}
	if err := s.gateway.Call(ctx, http.MethodDelete, "/training-videos", payload, nil); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.videos {
		if s.videos[i].ID == videoID {
			s.videos = append(s.videos[:i], s.videos[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// AddFile registers a nutrition file link and prepends it to the cached
// collection. An empty traineeID addresses the file to all of the uploader's
// trainees.
func (s *Session) AddFile(ctx context.Context, name, fileURL string, traineeID *primitive.ObjectID) (*domain.NutritionFile, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageMedia) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := struct {
		Name      string  `json:"name"`
		FileURL   string  `json:"fileUrl"`
		TraineeID *string `json:"traineeId,omitempty"`
	}{Name: name, FileURL: fileURL}
	if traineeID != nil {
		hex := traineeID.Hex()
		payload.TraineeID = &hex
	}

	var env fileEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/nutrition-files", payload, &env); err != nil {
		return nil, err
	}
	if env.File == nil {
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	s.files = append([]domain.NutritionFile{*env.File}, s.files...)
	s.mu.Unlock()
	return env.File, nil
}

// DeleteFile removes a nutrition file.
func (s *Session) DeleteFile(ctx context.Context, fileID primitive.ObjectID) error {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageMedia) {
		return ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"fileId": fileID.Hex()}
	if err := s.gateway.Call(ctx, http.MethodDelete, "/nutrition-files", payload, nil); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.files {
		if s.files[i].ID == fileID {
			s.files = append(s.files[:i], s.files[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// FileUploadURL requests a presigned ticket for hosting a nutrition document:
// PUT the document to UploadURL, then register FileURL via AddFile.
func (s *Session) FileUploadURL(ctx context.Context, fileName, contentType string) (*UploadTicket, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionManageMedia) {
		return nil, ErrUnauthorized
	}

	s.beginAction()
	defer s.endAction()

	payload := map[string]string{"fileName": fileName, "contentType": contentType}
	var env uploadEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/nutrition-files/upload-url", payload, &env); err != nil {
		return nil, err
	}
	if env.Upload == nil {
		return nil, ErrMalformedResponse
	}
	return env.Upload, nil
}
