package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Email        string     `json:"email" db:"email" example:"user@example.com"`
	Password     string     `json:"-" db:"hashed_password"` // bcrypt hash, excluded from JSON
	FIO          string     `json:"fio" db:"fio" example:"Ivanov Ivan Ivanovich"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	Gender       *string    `json:"gender,omitempty" db:"gender"`
	Birthday     time.Time  `json:"birthday" db:"birthday" example:"2000-01-01T00:00:00Z"`
	Role         Role       `json:"role" db:"role" example:"candidate"`
	PolicyAgreed bool       `json:"policyAgreed" db:"policy_agreed"`
	FirstAccess  time.Time  `json:"firstAccess" db:"first_access"`
	LastAccess   time.Time  `json:"lastAccess" db:"last_access"`
	LastIP       string     `json:"lastIp" db:"last_ip"`
	Active       bool       `json:"active" db:"active"`
	VK           *string    `json:"vk,omitempty" db:"vk"`
	Telegram     *string    `json:"telegram,omitempty" db:"telegram"`
}

// Feedback is a free-form note one user leaves about another.
type Feedback struct {
	ID       int64  `json:"id" db:"id"`
	SenderID int64  `json:"senderId" db:"sender_id"`
	TargetID int64  `json:"targetId" db:"target_id"`
	Text     string `json:"text" db:"text"`
}

// Mailing is a record of one templated email sent to one user.
type Mailing struct {
	ID       int64     `json:"id" db:"id"`
	SenderID int64     `json:"senderId" db:"sender_id"`
	TargetID int64     `json:"targetId" db:"target_id"`
	TimeSent time.Time `json:"timeSent" db:"time_sent"`
	Subject  string    `json:"subject" db:"subject"`
	Message  string    `json:"message" db:"message"`
}
