package service

import (
	"context"
	"errors"
	"testing"

	"fitcoach/coaching-app/internal/domain"
)

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	userRepo := newStubUserRepo()
	trainee := userRepo.add(activeUser(domain.RoleTrainee))
	trainer := userRepo.add(activeUser(domain.RoleTrainer))
	admin := userRepo.add(activeUser(domain.RoleAdmin))

	svc := NewAccountService(userRepo)
	status := domain.StatusRejected

	_, err := svc.Update(context.Background(), trainer, trainee.ID, AccountUpdate{Status: &status})
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("trainer status change: err = %v, want ErrNotAllowed", err)
	}

	updated, err := svc.Update(context.Background(), admin, trainee.ID, AccountUpdate{Status: &status})
	if err != nil {
		t.Fatalf("admin status change failed: %v", err)
	}
	if updated.Status != domain.StatusRejected {
		t.Errorf("status = %q, want rejected", updated.Status)
	}
}

func TestUpdateSuperAdminGuard(t *testing.T) {
	userRepo := newStubUserRepo()
	super := activeUser(domain.RoleAdmin)
	super.SuperAdmin = true
	super = userRepo.add(super)
	admin := userRepo.add(activeUser(domain.RoleAdmin))

	svc := NewAccountService(userRepo)

	role := domain.RoleTrainee
	_, err := svc.Update(context.Background(), admin, super.ID, AccountUpdate{Role: &role})
	if !errors.Is(err, ErrSuperAdminImmutable) {
		t.Fatalf("err = %v, want ErrSuperAdminImmutable", err)
	}

	// Profile fields on the reserved account are still editable.
	name := "Head Office"
	updated, err := svc.Update(context.Background(), admin, super.ID, AccountUpdate{Name: &name})
	if err != nil {
		t.Fatalf("profile edit on super admin failed: %v", err)
	}
	if updated.Name != "Head Office" {
		t.Errorf("name = %q, want %q", updated.Name, "Head Office")
	}
}

func TestUpdateProfileSelfOrAdminOnly(t *testing.T) {
	userRepo := newStubUserRepo()
	trainee := userRepo.add(activeUser(domain.RoleTrainee))
	other := userRepo.add(activeUser(domain.RoleTrainee))

	svc := NewAccountService(userRepo)
	name := "New Name"

	if _, err := svc.Update(context.Background(), trainee, trainee.ID, AccountUpdate{Name: &name}); err != nil {
		t.Fatalf("self edit failed: %v", err)
	}
	if _, err := svc.Update(context.Background(), trainee, other.ID, AccountUpdate{Name: &name}); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("edit of another account: err = %v, want ErrNotAllowed", err)
	}
}

func TestAssignTrainerValidation(t *testing.T) {
	userRepo := newStubUserRepo()
	admin := userRepo.add(activeUser(domain.RoleAdmin))
	trainer := userRepo.add(activeUser(domain.RoleTrainer))
	trainee := userRepo.add(activeUser(domain.RoleTrainee))

	svc := NewAccountService(userRepo)

	traineeID := trainee.ID
	_, err := svc.Update(context.Background(), admin, trainee.ID, AccountUpdate{TrainerID: &traineeID})
	if !errors.Is(err, ErrTrainerSelfLink) {
		t.Fatalf("self link: err = %v, want ErrTrainerSelfLink", err)
	}

	// Linking to a non-trainer account is rejected.
	otherTrainee := userRepo.add(activeUser(domain.RoleTrainee))
	otherID := otherTrainee.ID
	_, err = svc.Update(context.Background(), admin, trainee.ID, AccountUpdate{TrainerID: &otherID})
	if !errors.Is(err, ErrInvalidTrainer) {
		t.Fatalf("non-trainer link: err = %v, want ErrInvalidTrainer", err)
	}

	trainerID := trainer.ID
	updated, err := svc.Update(context.Background(), admin, trainee.ID, AccountUpdate{TrainerID: &trainerID})
	if err != nil {
		t.Fatalf("valid link failed: %v", err)
	}
	if updated.TrainerID == nil || *updated.TrainerID != trainer.ID {
		t.Errorf("trainer link not recorded")
	}
}

func TestRoleChangeClearsTraineeFields(t *testing.T) {
	userRepo := newStubUserRepo()
	admin := userRepo.add(activeUser(domain.RoleAdmin))
	trainer := userRepo.add(activeUser(domain.RoleTrainer))
	trainee := traineeOf(trainer)
	planID := trainer.ID // any object id works as a plan reference here
	trainee.SelectedPlanID = &planID
	trainee = userRepo.add(trainee)

	svc := NewAccountService(userRepo)

	role := domain.RoleTrainer
	updated, err := svc.Update(context.Background(), admin, trainee.ID, AccountUpdate{Role: &role})
	if err != nil {
		t.Fatalf("role change failed: %v", err)
	}
	if updated.TrainerID != nil || updated.SelectedPlanID != nil {
		t.Errorf("trainee-only fields survived role change: %+v", updated)
	}
}

func TestListStripsPasswordHashes(t *testing.T) {
	userRepo := newStubUserRepo()
	user := activeUser(domain.RoleTrainee)
	user.PasswordHash = "hash"
	userRepo.add(user)

	svc := NewAccountService(userRepo)
	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Errorf("password hash leaked for %s", u.ID.Hex())
		}
	}
}
