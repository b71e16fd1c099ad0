package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request Structs ---

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type SignupRequest struct {
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	Country        string `json:"country" binding:"required"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password" binding:"required,min=6"`
	SelectedPlanID string `json:"selectedPlanId" binding:"required"`
}

// Login authenticates by phone-or-email plus password and returns the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.EmailOrPhone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountPending), errors.Is(err, service.ErrAccountRejected):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Signup registers a new trainee with pending status.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.SelectedPlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan identifier")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		PhoneNumber:    req.PhoneNumber,
		Country:        req.Country,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		SelectedPlanID: planID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPlanRequired):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during signup")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Your account is pending review.",
		"user":    user,
	})
}

// CurrentUser performs silent re-authentication from a persisted identifier.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userIDParam := c.Query("userId")
	if userIDParam == "" {
		abortWithError(c, http.StatusBadRequest, "userId query parameter is required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDParam)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user identifier")
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, "Unknown user")
		case errors.Is(err, service.ErrAccountPending), errors.Is(err, service.ErrAccountRejected):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
