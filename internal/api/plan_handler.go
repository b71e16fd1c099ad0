package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type CreatePlanRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"durationMonths" binding:"required,min=1"`
}

type UpdatePlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
	CreatePlanRequest
}

type DeletePlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// List returns all plans. Available to anonymous callers so the signup page
// can show them.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// Create adds a plan. Admin only.
func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), service.PlanInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// Update edits a plan. Admin only.
func (h *PlanHandler) Update(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan identifier")
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), planID, service.PlanInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// Delete removes a plan. Admin only. Users referencing the plan keep their
// (now dangling) reference.
func (h *PlanHandler) Delete(c *gin.Context) {
	var req DeletePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan identifier")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), planID); err != nil {
		h.planError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidPlan), errors.Is(err, service.ErrPlanNameMissing):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process plan")
	}
}
