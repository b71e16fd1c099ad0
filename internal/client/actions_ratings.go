package client

import (
	"context"
	"errors"
	"net/http"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStarsOutOfRange rejects a rating before any network call is made.
var ErrStarsOutOfRange = errors.New("stars must be between 1 and 5")

// SubmitRating records the trainee's rating of a plan or trainer. Stars are
// validated client-side; the server validates everything again.
func (s *Session) SubmitRating(ctx context.Context, itemID primitive.ObjectID, itemType domain.RatedItemType, stars int, comment string) (*domain.Rating, error) {
	principal := s.Principal()
	if principal == nil || !Can(principal.Role, ActionSubmitRating) {
		return nil, ErrUnauthorized
	}
	if stars < 1 || stars > 5 {
		return nil, ErrStarsOutOfRange
	}

	s.beginAction()
	defer s.endAction()

	payload := struct {
		RatedItemID   string `json:"ratedItemId"`
		RatedItemType string `json:"ratedItemType"`
		Stars         int    `json:"stars"`
		Comment       string `json:"comment,omitempty"`
	}{itemID.Hex(), string(itemType), stars, comment}

	var env ratingEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/ratings", payload, &env); err != nil {
		return nil, err
	}
	if env.Rating == nil {
		return nil, ErrMalformedResponse
	}
	return env.Rating, nil
}
