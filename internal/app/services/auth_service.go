package services

import (
	"context"
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	pkgauth "github.com/EgorTarasov/ldt-2023/internal/pkg/auth"
)

// userStore is the persistence surface AuthService needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	RecordAccess(ctx context.Context, id int64, ip string, at time.Time) error
}

// AuthService handles registration, login and identity lookup.
type AuthService struct {
	users userStore
	jwt   *pkgauth.JWTService
	now   func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users userStore, jwt *pkgauth.JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
		now:   time.Now,
	}
}

// Register creates an account and issues the first token pair. The curator
// role is never self-assigned; curators are seeded or issued credentials.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*models.User, *dto.TokenResponse, error) {
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleCandidate
	}
	if !role.Valid() || role == models.RoleCurator {
		return nil, nil, apperrors.NewValidationError("unknown or disallowed role")
	}
	if !req.PolicyAgreed {
		return nil, nil, apperrors.NewValidationError("the personal data policy must be accepted")
	}

	birthday, err := time.Parse(dto.DateFormat, req.Birthday)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("birthday must be formatted as YYYY-MM-DD")
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	user := &models.User{
		Email:        req.Email,
		Password:     hashed,
		FIO:          req.FIO,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Birthday:     birthday,
		Role:         role,
		PolicyAgreed: req.PolicyAgreed,
		FirstAccess:  now,
		LastAccess:   now,
		LastIP:       ip,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Login verifies credentials and issues a token pair. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip string) (*models.User, *dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !pkgauth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if err := s.users.RecordAccess(ctx, user.ID, ip, s.now()); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Me returns the user behind a validated token's claims.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	access, refresh, expiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}
