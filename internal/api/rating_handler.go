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

// RatingHandler holds the rating service dependency.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

type SubmitRatingRequest struct {
	RatedItemID   string `json:"ratedItemId" binding:"required"`
	RatedItemType string `json:"ratedItemType" binding:"required,oneof=plan trainer"`
	Stars         int    `json:"stars" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

// List returns all ratings, newest first. Admin only.
func (h *RatingHandler) List(c *gin.Context) {
	ratings, err := h.ratingService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list ratings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// Submit records a trainee's rating of a plan or trainer.
func (h *RatingHandler) Submit(c *gin.Context) {
	requester, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ratedItemID, err := primitive.ObjectIDFromHex(req.RatedItemID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid rated item identifier")
		return
	}

	rating, err := h.ratingService.Submit(c.Request.Context(), requester, service.RatingInput{
		RatedItemID:   ratedItemID,
		RatedItemType: domain.RatedItemType(req.RatedItemType),
		Stars:         req.Stars,
		Comment:       req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTraineesOnly):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidStars), errors.Is(err, service.ErrInvalidRatedItem):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit rating")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}
