// Package service orchestrates the application's workflows over the
// repository and collaborator layers.
package service

import (
	"context"

	"coverforge/internal/models"
	"coverforge/internal/repository"
	"coverforge/internal/secrets"
	"coverforge/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService implements signup, authentication, and dashboard mutations
// against the credential store.
type AccountService struct {
	users repository.UserRepository
	box   *secrets.Box
}

// NewAccountService returns a new AccountService.
func NewAccountService(users repository.UserRepository, box *secrets.Box) *AccountService {
	return &AccountService{users: users, box: box}
}

// Signup validates the input, rejects duplicate e-mails before any row is
// created, and stores the password as a bcrypt hash.
func (s *AccountService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when the password matches the stored hash.
// The rejection is uniform; callers learn nothing about which field was wrong.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// UpdateDashboardInput carries the dashboard's partial update; nil fields are
// left untouched.
type UpdateDashboardInput struct {
	Resume        *string
	APICredential *string
}

// UpdateDashboard overwrites the resume and/or seals and stores a new
// provider credential for the user.
func (s *AccountService) UpdateDashboard(ctx context.Context, userID uint, in UpdateDashboardInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Resume != nil {
		if err := validation.ValidateResume(*in.Resume); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Resume = *in.Resume
	}

	if in.APICredential != nil && *in.APICredential != "" {
		sealed, err := s.box.Seal(*in.APICredential)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.APICredential = sealed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before re-hashing the new one.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return models.NewUnauthorizedError("Invalid credentials")
	}
	return s.setPassword(ctx, user, next)
}

// ResetPassword overwrites the password without knowing the old one. Callers
// must have verified a reset token first.
func (s *AccountService) ResetPassword(ctx context.Context, userID uint, password string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, password)
}

func (s *AccountService) setPassword(ctx context.Context, user *models.User, password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

// DeleteAccount removes the user; the database cascades the log rows.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.users.Delete(ctx, userID)
}
