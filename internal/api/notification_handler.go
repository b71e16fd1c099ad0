package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler holds the notification service dependency.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type SendNotificationRequest struct {
	RecipientSpecifier string `json:"recipientSpecifier" binding:"required"`
	Title              string `json:"title" binding:"required"`
	Message            string `json:"message" binding:"required"`
	Link               string `json:"link"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notificationId" binding:"required"`
}

// List returns the requester's notifications, newest first, with per-user
// read state resolved.
func (h *NotificationHandler) List(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	notifications, err := h.notificationService.ListFor(c.Request.Context(), requester)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// Send creates a notification. Admins may target anyone, a role, or "all";
// trainers may target one of their own trainees.
func (h *NotificationHandler) Send(c *gin.Context) {
	sender, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	n, err := h.notificationService.Send(c.Request.Context(), sender, service.NotificationInput{
		RecipientSpecifier: req.RecipientSpecifier,
		Title:              req.Title,
		Message:            req.Message,
		Link:               req.Link,
	})
	if err != nil {
		h.notificationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

// MarkRead records that the requester has read a notification. Marking twice
// has the same effect as marking once.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	notificationID, err := primitive.ObjectIDFromHex(req.NotificationID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid notification identifier")
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), requester, notificationID)
	if err != nil {
		h.notificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": n})
}

func (h *NotificationHandler) notificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotRecipient),
		errors.Is(err, service.ErrNotAllowed),
		errors.Is(err, service.ErrNotYourTrainee):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidSpecifier):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process notification")
	}
}
