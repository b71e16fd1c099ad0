package service

import (
	"context"
	"errors"
	"testing"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestSignupCreatesPendingTrainee(t *testing.T) {
	userRepo := newStubUserRepo()
	planRepo := newStubPlanRepo()
	plan := planRepo.add(&domain.TrainingPlan{Name: "Basic", Price: 20, DurationMonths: 1})

	svc := NewAuthService(userRepo, planRepo)

	user, err := svc.Signup(context.Background(), SignupInput{
		PhoneNumber:    "+201000000001",
		Country:        "EG",
		Password:       "secret123",
		SelectedPlanID: plan.ID,
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Role != domain.RoleTrainee {
		t.Errorf("role = %q, want trainee", user.Role)
	}
	if user.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", user.Status)
	}
	if user.SelectedPlanID == nil || *user.SelectedPlanID != plan.ID {
		t.Errorf("selected plan not recorded")
	}
	if user.PasswordHash != "" {
		t.Errorf("password hash leaked in response")
	}
}

func TestSignupRequiresExistingPlan(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubPlanRepo())

	_, err := svc.Signup(context.Background(), SignupInput{
		PhoneNumber:    "+201000000002",
		Password:       "secret123",
		SelectedPlanID: primitive.NewObjectID(),
	})
	if !errors.Is(err, ErrPlanRequired) {
		t.Fatalf("err = %v, want ErrPlanRequired", err)
	}

	_, err = svc.Signup(context.Background(), SignupInput{
		PhoneNumber: "+201000000002",
		Password:    "secret123",
	})
	if !errors.Is(err, ErrPlanRequired) {
		t.Fatalf("err = %v, want ErrPlanRequired for missing plan", err)
	}
}

func TestSignupRejectsDuplicatePhone(t *testing.T) {
	userRepo := newStubUserRepo()
	planRepo := newStubPlanRepo()
	plan := planRepo.add(&domain.TrainingPlan{Name: "Basic", DurationMonths: 1})
	userRepo.add(&domain.User{PhoneNumber: "+201000000003", Role: domain.RoleTrainee, Status: domain.StatusActive})

	svc := NewAuthService(userRepo, planRepo)

	_, err := svc.Signup(context.Background(), SignupInput{
		PhoneNumber:    "+201000000003",
		Password:       "secret123",
		SelectedPlanID: plan.ID,
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginStatusGates(t *testing.T) {
	cases := []struct {
		status  domain.AccountStatus
		wantErr error
	}{
		{domain.StatusPending, ErrAccountPending},
		{domain.StatusRejected, ErrAccountRejected},
		{domain.StatusActive, nil},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			userRepo := newStubUserRepo()
			userRepo.add(&domain.User{
				PhoneNumber:  "+201000000004",
				PasswordHash: hashFor(t, "secret123"),
				Role:         domain.RoleTrainee,
				Status:       tc.status,
			})
			svc := NewAuthService(userRepo, newStubPlanRepo())

			user, err := svc.Login(context.Background(), "+201000000004", "secret123")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && user.PasswordHash != "" {
				t.Errorf("password hash leaked in response")
			}
		})
	}
}

func TestLoginByEmailAndBadPassword(t *testing.T) {
	userRepo := newStubUserRepo()
	userRepo.add(&domain.User{
		PhoneNumber:  "+201000000005",
		Email:        "coach@example.com",
		PasswordHash: hashFor(t, "secret123"),
		Role:         domain.RoleTrainer,
		Status:       domain.StatusActive,
	})
	svc := NewAuthService(userRepo, newStubPlanRepo())

	if _, err := svc.Login(context.Background(), "coach@example.com", "secret123"); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "coach@example.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret123"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed for unknown user", err)
	}
}

func TestCurrentUserAppliesStatusGates(t *testing.T) {
	userRepo := newStubUserRepo()
	pending := userRepo.add(&domain.User{
		PhoneNumber: "+201000000006",
		Role:        domain.RoleTrainee,
		Status:      domain.StatusPending,
	})
	svc := NewAuthService(userRepo, newStubPlanRepo())

	if _, err := svc.CurrentUser(context.Background(), pending.ID); !errors.Is(err, ErrAccountPending) {
		t.Fatalf("err = %v, want ErrAccountPending", err)
	}
	if _, err := svc.CurrentUser(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed for unknown id", err)
	}
}

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	userRepo := newStubUserRepo()
	svc := NewAuthService(userRepo, newStubPlanRepo())

	if err := svc.EnsureSuperAdmin(context.Background(), "+201099999999", "adminpass", "EG"); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := svc.EnsureSuperAdmin(context.Background(), "+201099999999", "adminpass", "EG"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	admin, err := userRepo.GetByPhoneOrEmail(context.Background(), "+201099999999")
	if err != nil {
		t.Fatalf("seeded admin not found: %v", err)
	}
	if !admin.SuperAdmin || admin.Role != domain.RoleAdmin || admin.Status != domain.StatusActive {
		t.Errorf("seeded admin = %+v, want active super admin", admin)
	}
}
