package services

import (
	"context"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	pkgauth "github.com/EgorTarasov/ldt-2023/internal/pkg/auth"
)

// profileStore is the persistence surface UserService needs.
type profileStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// UserService handles profile reads and updates.
type UserService struct {
	users profileStore
}

// NewUserService creates a new user service
func NewUserService(users profileStore) *UserService {
	return &UserService{
		users: users,
	}
}

// GetProfile returns a user's profile. Everyone may look up profiles by
// id; the password hash never leaves the model's JSON representation.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies the mutable profile fields for the caller.
func (s *UserService) UpdateProfile(ctx context.Context, caller *models.User, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if req.FIO != "" {
		user.FIO = req.FIO
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.VK != nil {
		user.VK = req.VK
	}
	if req.Telegram != nil {
		user.Telegram = req.Telegram
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, caller *models.User, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}

	if !pkgauth.CheckPassword(user.Password, oldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}

	hashed, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, caller.ID, hashed)
}

// ListMentors returns all active mentors, used by HR when picking someone
// to propose a vacancy to.
func (s *UserService) ListMentors(ctx context.Context, caller *models.User) ([]*models.User, error) {
	if caller.Role != models.RoleHR && caller.Role != models.RoleCurator {
		return nil, apperrors.NewForbiddenError("only hr and curators can browse mentors")
	}
	return s.users.ListByRole(ctx, models.RoleMentor)
}
