package service

import (
	"context"
	"errors"
	"testing"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubmitRatingTraineesOnly(t *testing.T) {
	userRepo := newStubUserRepo()
	planRepo := newStubPlanRepo()
	plan := planRepo.add(&domain.TrainingPlan{Name: "Basic", DurationMonths: 1})
	trainer := userRepo.add(activeUser(domain.RoleTrainer))

	svc := NewRatingService(&stubRatingRepo{}, planRepo, userRepo)

	_, err := svc.Submit(context.Background(), trainer, RatingInput{
		RatedItemID:   plan.ID,
		RatedItemType: domain.RatedItemPlan,
		Stars:         5,
	})
	if !errors.Is(err, ErrTraineesOnly) {
		t.Fatalf("err = %v, want ErrTraineesOnly", err)
	}
}

func TestSubmitRatingStarsRange(t *testing.T) {
	userRepo := newStubUserRepo()
	planRepo := newStubPlanRepo()
	plan := planRepo.add(&domain.TrainingPlan{Name: "Basic", DurationMonths: 1})
	trainee := userRepo.add(activeUser(domain.RoleTrainee))

	svc := NewRatingService(&stubRatingRepo{}, planRepo, userRepo)

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), trainee, RatingInput{
			RatedItemID:   plan.ID,
			RatedItemType: domain.RatedItemPlan,
			Stars:         stars,
		})
		if !errors.Is(err, ErrInvalidStars) {
			t.Errorf("stars=%d: err = %v, want ErrInvalidStars", stars, err)
		}
	}

	rating, err := svc.Submit(context.Background(), trainee, RatingInput{
		RatedItemID:   plan.ID,
		RatedItemType: domain.RatedItemPlan,
		Stars:         4,
		Comment:       "solid plan",
	})
	if err != nil {
		t.Fatalf("valid rating failed: %v", err)
	}
	if rating.Stars != 4 || rating.UserID != trainee.ID {
		t.Errorf("rating = %+v", rating)
	}
}

func TestSubmitRatingValidatesTarget(t *testing.T) {
	userRepo := newStubUserRepo()
	planRepo := newStubPlanRepo()
	trainee := userRepo.add(activeUser(domain.RoleTrainee))
	trainer := userRepo.add(activeUser(domain.RoleTrainer))

	svc := NewRatingService(&stubRatingRepo{}, planRepo, userRepo)

	// Missing plan.
	_, err := svc.Submit(context.Background(), trainee, RatingInput{
		RatedItemID:   primitive.NewObjectID(),
		RatedItemType: domain.RatedItemPlan,
		Stars:         3,
	})
	if !errors.Is(err, ErrInvalidRatedItem) {
		t.Fatalf("missing plan: err = %v, want ErrInvalidRatedItem", err)
	}

	// Rating a trainee as a "trainer" target.
	otherTrainee := userRepo.add(activeUser(domain.RoleTrainee))
	_, err = svc.Submit(context.Background(), trainee, RatingInput{
		RatedItemID:   otherTrainee.ID,
		RatedItemType: domain.RatedItemTrainer,
		Stars:         3,
	})
	if !errors.Is(err, ErrInvalidRatedItem) {
		t.Fatalf("non-trainer target: err = %v, want ErrInvalidRatedItem", err)
	}

	// A real trainer works.
	if _, err := svc.Submit(context.Background(), trainee, RatingInput{
		RatedItemID:   trainer.ID,
		RatedItemType: domain.RatedItemTrainer,
		Stars:         5,
	}); err != nil {
		t.Fatalf("trainer rating failed: %v", err)
	}
}

func TestListResolvesUserNames(t *testing.T) {
	userRepo := newStubUserRepo()
	planRepo := newStubPlanRepo()
	plan := planRepo.add(&domain.TrainingPlan{Name: "Basic", DurationMonths: 1})
	trainee := activeUser(domain.RoleTrainee)
	trainee.Name = "Sara"
	trainee = userRepo.add(trainee)

	ratingRepo := &stubRatingRepo{}
	svc := NewRatingService(ratingRepo, planRepo, userRepo)

	if _, err := svc.Submit(context.Background(), trainee, RatingInput{
		RatedItemID:   plan.ID,
		RatedItemType: domain.RatedItemPlan,
		Stars:         5,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	ratings, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ratings) != 1 || ratings[0].UserName != "Sara" {
		t.Errorf("ratings = %+v, want one entry named Sara", ratings)
	}
}
