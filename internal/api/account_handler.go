package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountHandler holds the account service dependency.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ManageUserRequest is the admin-manage-user payload. Pointer fields are
// only applied when present. Status, role and trainer linkage are admin-only;
// profile fields are also accepted from the account owner.
type ManageUserRequest struct {
	UserID         string                `json:"userId" binding:"required"`
	Status         *domain.AccountStatus `json:"status"`
	Role           *domain.Role          `json:"role"`
	TrainerID      *string               `json:"trainerId"`
	SelectedPlanID *string               `json:"selectedPlanId"`
	Name           *string               `json:"name"`
	Email          *string               `json:"email"`
	Country        *string               `json:"country"`
	PhoneNumber    *string               `json:"phoneNumber"`
}

// List returns every user account. Admin and trainer only; trainers filter
// down to their own trainees client-side.
func (h *AccountHandler) List(c *gin.Context) {
	users, err := h.accountService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Update mutates one account on behalf of the requester.
func (h *AccountHandler) Update(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ManageUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user identifier")
		return
	}

	upd := service.AccountUpdate{
		Status:      req.Status,
		Role:        req.Role,
		Name:        req.Name,
		Email:       req.Email,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
	}
	if req.TrainerID != nil {
		trainerID, err := primitive.ObjectIDFromHex(*req.TrainerID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid trainer identifier")
			return
		}
		upd.TrainerID = &trainerID
	}
	if req.SelectedPlanID != nil {
		planID, err := primitive.ObjectIDFromHex(*req.SelectedPlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid plan identifier")
			return
		}
		upd.SelectedPlanID = &planID
	}

	user, err := h.accountService.Update(c.Request.Context(), requester, targetID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAllowed):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSuperAdminImmutable),
			errors.Is(err, service.ErrTrainerSelfLink),
			errors.Is(err, service.ErrInvalidTrainer),
			errors.Is(err, service.ErrInvalidRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
