package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVideoNotFound = errors.New("training video not found")
	ErrFileNotFound  = errors.New("nutrition file not found")
	ErrNotUploader   = errors.New("only the uploader or an admin may delete this item")
	ErrUploadURL     = errors.New("failed to generate upload URL")
)

// UploadTicket is handed to a trainer who wants to host a nutrition file:
// PUT the document to UploadURL, then register FileURL as the file's link.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	ObjectKey string `json:"objectKey"`
}

// MediaService handles training videos and nutrition files. Both are links
// to externally hosted content; ownership gates deletion.
type MediaService interface {
	ListVideos(ctx context.Context, uploadedBy *primitive.ObjectID) ([]domain.TrainingVideo, error)
	AddVideo(ctx context.Context, uploader *domain.User, title, videoURL string) (*domain.TrainingVideo, error)
	DeleteVideo(ctx context.Context, requester *domain.User, id primitive.ObjectID) error

	ListFiles(ctx context.Context, filter repository.NutritionFileFilter) ([]domain.NutritionFile, error)
	AddFile(ctx context.Context, uploader *domain.User, name, fileURL string, traineeID *primitive.ObjectID) (*domain.NutritionFile, error)
	DeleteFile(ctx context.Context, requester *domain.User, id primitive.ObjectID) error

	// FileUploadURL issues a presigned ticket for hosting a nutrition
	// document on the configured object store.
	FileUploadURL(ctx context.Context, uploader *domain.User, fileName, contentType string) (*UploadTicket, error)
}

type mediaService struct {
	videoRepo   repository.TrainingVideoRepository
	fileRepo    repository.NutritionFileRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewMediaService creates a new instance of mediaService. fileStorage may be
// nil, in which case upload tickets are unavailable.
func NewMediaService(
	videoRepo repository.TrainingVideoRepository,
	fileRepo repository.NutritionFileRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
) MediaService {
	return &mediaService{
		videoRepo:   videoRepo,
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

func (s *mediaService) ListVideos(ctx context.Context, uploadedBy *primitive.ObjectID) ([]domain.TrainingVideo, error) {
	videos, err := s.videoRepo.List(ctx, uploadedBy)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	for i := range videos {
		videos[i].UploadedByName = s.uploaderName(ctx, names, videos[i].UploadedBy)
	}
	return videos, nil
}

func (s *mediaService) AddVideo(ctx context.Context, uploader *domain.User, title, videoURL string) (*domain.TrainingVideo, error) {
	if title == "" || videoURL == "" {
		return nil, errors.New("video title and URL are required")
	}

	video := &domain.TrainingVideo{
		Title:      title,
		VideoURL:   videoURL,
		UploadedBy: uploader.ID,
	}
	id, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	video.ID = id
	video.UploadedByName = uploader.Name
	return video, nil
}

// DeleteVideo removes a video; only its uploader or an admin may do so.
func (s *mediaService) DeleteVideo(ctx context.Context, requester *domain.User, id primitive.ObjectID) error {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if !requester.IsAdmin() && video.UploadedBy != requester.ID {
		return ErrNotUploader
	}
	return s.videoRepo.Delete(ctx, id)
}

func (s *mediaService) ListFiles(ctx context.Context, filter repository.NutritionFileFilter) ([]domain.NutritionFile, error) {
	files, err := s.fileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	for i := range files {
		files[i].UploadedByName = s.uploaderName(ctx, names, files[i].UploadedBy)
	}
	return files, nil
}

func (s *mediaService) AddFile(ctx context.Context, uploader *domain.User, name, fileURL string, traineeID *primitive.ObjectID) (*domain.NutritionFile, error) {
	if name == "" || fileURL == "" {
		return nil, errors.New("file name and URL are required")
	}
	if traineeID != nil {
		trainee, err := s.userRepo.GetByID(ctx, *traineeID)
		if err != nil || !trainee.IsTrainee() {
			return nil, errors.New("target trainee does not exist")
		}
	}

	file := &domain.NutritionFile{
		Name:       name,
		FileURL:    fileURL,
		UploadedBy: uploader.ID,
		TraineeID:  traineeID,
	}
	id, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		return nil, err
	}
	file.ID = id
	file.UploadedByName = uploader.Name
	return file, nil
}

func (s *mediaService) DeleteFile(ctx context.Context, requester *domain.User, id primitive.ObjectID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFileNotFound
		}
		return err
	}
	if !requester.IsAdmin() && file.UploadedBy != requester.ID {
		return ErrNotUploader
	}
	return s.fileRepo.Delete(ctx, id)
}

func (s *mediaService) FileUploadURL(ctx context.Context, uploader *domain.User, fileName, contentType string) (*UploadTicket, error) {
	if s.fileStorage == nil {
		return nil, errors.New("file storage is not configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ext := path.Ext(fileName)
	objectKey := path.Join("nutrition", uploader.ID.Hex(), fmt.Sprintf("%s%s", uuid.NewString(), strings.ToLower(ext)))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURL
	}

	return &UploadTicket{
		UploadURL: uploadURL,
		FileURL:   s.fileStorage.ObjectURL(objectKey),
		ObjectKey: objectKey,
	}, nil
}

// uploaderName resolves an uploader's display name, memoised per call.
func (s *mediaService) uploaderName(ctx context.Context, cache map[primitive.ObjectID]string, id primitive.ObjectID) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := ""
	if user, err := s.userRepo.GetByID(ctx, id); err == nil {
		name = user.Name
	}
	cache[id] = name
	return name
}
