package dto

import (
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// DateFormat is the wire format for date-only fields (birthday, graduation).
const DateFormat = "2006-01-02"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required,email" example:"test@test.com"`
	Password     string  `json:"password" binding:"required,min=8" example:"test123456"`
	FIO          string  `json:"fio" binding:"required" example:"Ivanov Ivan Ivanovich"`
	Phone        *string `json:"phone,omitempty" example:"+7 (999) 999-99-99"`
	Gender       *string `json:"gender,omitempty" example:"M"`
	Birthday     string  `json:"birthday" binding:"required" example:"2000-01-01"`
	Role         string  `json:"role,omitempty" example:"candidate"`
	PolicyAgreed bool    `json:"policyAgreed" example:"true"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email        string `json:"email" binding:"required,email" example:"test@test.com"`
	Password     string `json:"password" binding:"required" example:"test123456"`
	StayLoggedIn bool   `json:"stayLoggedin,omitempty" example:"false"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FIO      string  `json:"fio,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	VK       *string `json:"vk,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
}

// ChangePasswordRequest carries the old and new password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse is the public user representation.
type UserResponse struct {
	ID          int64     `json:"id" example:"1"`
	Email       string    `json:"email" example:"test@test.com"`
	FIO         string    `json:"fio" example:"Ivanov Ivan Ivanovich"`
	Phone       *string   `json:"phone,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	Birthday    string    `json:"birthday" example:"2000-01-01"`
	Role        string    `json:"role" example:"candidate"`
	Active      bool      `json:"active" example:"true"`
	FirstAccess time.Time `json:"firstAccess"`
	LastAccess  time.Time `json:"lastAccess"`
}

// FromUser converts a models.User to a UserResponse.
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FIO:         u.FIO,
		Phone:       u.Phone,
		Gender:      u.Gender,
		Birthday:    u.Birthday.Format(DateFormat),
		Role:        string(u.Role),
		Active:      u.Active,
		FirstAccess: u.FirstAccess,
		LastAccess:  u.LastAccess,
	}
}

// TokenResponse carries the issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
}
