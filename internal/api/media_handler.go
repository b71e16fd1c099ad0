package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaHandler holds the media service dependency.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type AddVideoRequest struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"videoUrl" binding:"required,url"`
}

type DeleteVideoRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

type AddFileRequest struct {
	Name      string  `json:"name" binding:"required"`
	FileURL   string  `json:"fileUrl" binding:"required,url"`
	TraineeID *string `json:"traineeId"`
}

type DeleteFileRequest struct {
	FileID string `json:"fileId" binding:"required"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
}

// ListVideos returns training videos, newest first. An optional uploadedBy
// query narrows to one uploader.
func (h *MediaHandler) ListVideos(c *gin.Context) {
	var uploadedBy *primitive.ObjectID
	if param := c.Query("uploadedBy"); param != "" {
		id, err := primitive.ObjectIDFromHex(param)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid uploader identifier")
			return
		}
		uploadedBy = &id
	}

	videos, err := h.mediaService.ListVideos(c.Request.Context(), uploadedBy)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list videos")
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// AddVideo registers a new training video link. Admin and trainer only.
func (h *MediaHandler) AddVideo(c *gin.Context) {
	uploader, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	video, err := h.mediaService.AddVideo(c.Request.Context(), uploader, req.Title, req.VideoURL)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to add video")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"video": video})
}

// DeleteVideo removes a video; only the uploader or an admin may do so.
func (h *MediaHandler) DeleteVideo(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DeleteVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	videoID, err := primitive.ObjectIDFromHex(req.VideoID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid video identifier")
		return
	}

	if err := h.mediaService.DeleteVideo(c.Request.Context(), requester, videoID); err != nil {
		h.mediaError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFiles returns the nutrition files the requester may see: trainees get
// files addressed to them plus their own trainer's untargeted uploads,
// trainers get their own uploads, admins get everything.
func (h *MediaHandler) ListFiles(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var filter repository.NutritionFileFilter
	switch {
	case requester.IsTrainee():
		traineeID := requester.ID
		filter.ForTrainee = &traineeID
		filter.SharedBy = requester.TrainerID
	case requester.IsTrainer():
		uploaderID := requester.ID
		filter.UploadedBy = &uploaderID
	}

	files, err := h.mediaService.ListFiles(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list files")
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// AddFile registers a nutrition file link. A nil traineeId addresses the file
// to all of the uploader's trainees.
func (h *MediaHandler) AddFile(c *gin.Context) {
	uploader, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req AddFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var traineeID *primitive.ObjectID
	if req.TraineeID != nil && *req.TraineeID != "" {
		id, err := primitive.ObjectIDFromHex(*req.TraineeID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid trainee identifier")
			return
		}
		traineeID = &id
	}

	file, err := h.mediaService.AddFile(c.Request.Context(), uploader, req.Name, req.FileURL, traineeID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": file})
}

// DeleteFile removes a nutrition file; only the uploader or an admin may do so.
func (h *MediaHandler) DeleteFile(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	fileID, err := primitive.ObjectIDFromHex(req.FileID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid file identifier")
		return
	}

	if err := h.mediaService.DeleteFile(c.Request.Context(), requester, fileID); err != nil {
		h.mediaError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FileUploadURL issues a presigned upload ticket for hosting a nutrition
// document on the object store.
func (h *MediaHandler) FileUploadURL(c *gin.Context) {
	uploader, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.mediaService.FileUploadURL(c.Request.Context(), uploader, req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUploadURL) {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload": ticket})
}

func (h *MediaHandler) mediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound), errors.Is(err, service.ErrFileNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotUploader):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process media item")
	}
}
