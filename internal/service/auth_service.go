package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("an account with this phone number already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid credentials")
	ErrAccountPending       = errors.New("account is pending approval")
	ErrAccountRejected      = errors.New("account has been rejected")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrPlanRequired         = errors.New("a training plan must be selected at signup")
)

// SignupInput carries the fields a new trainee provides at registration.
type SignupInput struct {
	PhoneNumber    string
	Country        string
	Name           string
	Email          string
	Password       string
	SelectedPlanID primitive.ObjectID
}

// AuthService handles signup, login, and silent re-authentication.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, phoneOrEmail, password string) (*domain.User, error)
	// CurrentUser resolves a persisted identifier back into a principal.
	CurrentUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// EnsureSuperAdmin seeds the one reserved admin account if missing.
	EnsureSuperAdmin(ctx context.Context, phone, password, country string) error
}

type authService struct {
	userRepo repository.UserRepository
	planRepo repository.TrainingPlanRepository
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, planRepo repository.TrainingPlanRepository) AuthService {
	return &authService{userRepo: userRepo, planRepo: planRepo}
}

// Signup registers a new trainee with pending status. Phone number and plan
// selection are mandatory; the account cannot log in until approved.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if input.PhoneNumber == "" || input.Password == "" {
		return nil, errors.New("phone number and password are required")
	}
	if input.SelectedPlanID == primitive.NilObjectID {
		return nil, ErrPlanRequired
	}

	// The selected plan must exist at signup time. (It may be deleted later;
	// the reference is weak from then on.)
	if _, err := s.planRepo.GetByID(ctx, input.SelectedPlanID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanRequired
		}
		return nil, err
	}

	_, err := s.userRepo.GetByPhoneOrEmail(ctx, input.PhoneNumber)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	planID := input.SelectedPlanID
	user := &domain.User{
		PhoneNumber:    input.PhoneNumber,
		Country:        input.Country,
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		Role:           domain.RoleTrainee,
		Status:         domain.StatusPending,
		SelectedPlanID: &planID,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates by phone-or-email plus password. Only active accounts
// may log in; pending and rejected accounts get a distinct error each.
func (s *authService) Login(ctx context.Context, phoneOrEmail, password string) (*domain.User, error) {
	if phoneOrEmail == "" || password == "" {
		return nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByPhoneOrEmail(ctx, phoneOrEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	switch user.Status {
	case domain.StatusPending:
		return nil, ErrAccountPending
	case domain.StatusRejected:
		return nil, ErrAccountRejected
	}

	user.PasswordHash = ""
	return user, nil
}

// CurrentUser implements silent re-authentication: the persisted identifier
// is exchanged for the current user record, subject to the same status
// checks as login.
func (s *authService) CurrentUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	switch user.Status {
	case domain.StatusPending:
		return nil, ErrAccountPending
	case domain.StatusRejected:
		return nil, ErrAccountRejected
	}

	user.PasswordHash = ""
	return user, nil
}

// EnsureSuperAdmin creates the reserved admin account on first startup.
func (s *authService) EnsureSuperAdmin(ctx context.Context, phone, password, country string) error {
	if phone == "" || password == "" {
		return errors.New("super admin phone and password must be configured")
	}

	existing, err := s.userRepo.GetByPhoneOrEmail(ctx, phone)
	if err == nil {
		if existing.SuperAdmin {
			return nil
		}
		existing.SuperAdmin = true
		existing.Role = domain.RoleAdmin
		existing.Status = domain.StatusActive
		return s.userRepo.Update(ctx, existing)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}

	admin := &domain.User{
		PhoneNumber:  phone,
		Country:      country,
		Name:         "Administrator",
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		SuperAdmin:   true,
	}
	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Get().Info().Str("phone", phone).Msg("super admin account created")
	return nil
}
