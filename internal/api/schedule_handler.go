package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler holds the schedule service dependency.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

type SaveScheduleItemRequest struct {
	TraineeID string `json:"traineeId" binding:"required"`
	Day       string `json:"day" binding:"required"`
	Exercises string `json:"exercises" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateScheduleItemRequest struct {
	ItemID    string  `json:"itemId" binding:"required"`
	Day       *string `json:"day"`
	Exercises *string `json:"exercises"`
	Notes     *string `json:"notes"`
}

type DeleteScheduleItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// ForTrainee returns one trainee's schedule in creation order. Trainees read
// their own; trainers read their own trainees'; admins read any.
func (h *ScheduleHandler) ForTrainee(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	traineeParam := c.Query("traineeId")
	if traineeParam == "" {
		abortWithError(c, http.StatusBadRequest, "traineeId query parameter is required")
		return
	}
	traineeID, err := primitive.ObjectIDFromHex(traineeParam)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee identifier")
		return
	}

	items, err := h.scheduleService.ForTrainee(c.Request.Context(), requester, traineeID)
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": items})
}

// Save creates a schedule entry for a trainee. Trainer and admin only.
func (h *ScheduleHandler) Save(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	traineeID, err := primitive.ObjectIDFromHex(req.TraineeID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee identifier")
		return
	}

	item, err := h.scheduleService.Save(c.Request.Context(), requester, service.ScheduleItemInput{
		TraineeID: traineeID,
		Day:       req.Day,
		Exercises: req.Exercises,
		Notes:     req.Notes,
	})
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update edits a schedule entry. The owning trainee cannot be moved.
func (h *ScheduleHandler) Update(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid schedule item identifier")
		return
	}

	item, err := h.scheduleService.Update(c.Request.Context(), requester, itemID, service.ScheduleItemPatch{
		Day:       req.Day,
		Exercises: req.Exercises,
		Notes:     req.Notes,
	})
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Delete removes a schedule entry.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DeleteScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid schedule item identifier")
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), requester, itemID); err != nil {
		h.scheduleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleItemNotFound), errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotYourTrainee), errors.Is(err, service.ErrNotAllowed):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process schedule item")
	}
}
