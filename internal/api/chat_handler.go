package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler holds the chat service dependency.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// Conversation returns the requester's conversation with a partner, oldest
// first, marking the partner's messages as read.
func (h *ChatHandler) Conversation(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	partnerParam := c.Query("partnerId")
	if partnerParam == "" {
		abortWithError(c, http.StatusBadRequest, "partnerId query parameter is required")
		return
	}
	partnerID, err := primitive.ObjectIDFromHex(partnerParam)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid partner identifier")
		return
	}

	messages, err := h.chatService.Conversation(c.Request.Context(), requester, partnerID)
	if err != nil {
		h.chatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Send posts a message to the requester's chat partner.
func (h *ChatHandler) Send(c *gin.Context) {
	sender, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid receiver identifier")
		return
	}

	msg, err := h.chatService.Send(c.Request.Context(), sender, receiverID, req.Content)
	if err != nil {
		h.chatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *ChatHandler) chatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotChatPartners):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmptyMessage):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process message")
	}
}
