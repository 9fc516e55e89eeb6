package dto

import (
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// SchoolInviteRequest is the curator payload for a school-invite mass
// mailing to every approved applicant.
type SchoolInviteRequest struct {
	Subject string `json:"subject" binding:"required" example:"Internship school invitation"`
	Message string `json:"message,omitempty"`
}

// EventMailingRequest targets candidates with event info or a reminder.
type EventMailingRequest struct {
	EventID int64  `json:"eventId" binding:"required,min=1" example:"3"`
	Subject string `json:"subject,omitempty"`
}

// CredentialsRequest creates an account with a generated password and
// emails the credentials to its owner.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email" example:"intern@test.com"`
	FIO      string `json:"fio" binding:"required" example:"Petrov Petr Petrovich"`
	Role     string `json:"role" binding:"required" example:"intern"`
	Birthday string `json:"birthday" binding:"required" example:"2001-05-20"`
}

// MailingResponse is the public mailing-record representation.
type MailingResponse struct {
	ID       int64     `json:"id" example:"1"`
	SenderID int64     `json:"senderId"`
	TargetID int64     `json:"targetId"`
	TimeSent time.Time `json:"timeSent"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
}

// FromMailing converts a models.Mailing to a MailingResponse.
func FromMailing(m *models.Mailing) MailingResponse {
	if m == nil {
		return MailingResponse{}
	}
	return MailingResponse{
		ID:       m.ID,
		SenderID: m.SenderID,
		TargetID: m.TargetID,
		TimeSent: m.TimeSent,
		Subject:  m.Subject,
		Message:  m.Message,
	}
}

// FromMailings converts a slice of mailing rows.
func FromMailings(mailings []*models.Mailing) []MailingResponse {
	out := make([]MailingResponse, 0, len(mailings))
	for _, m := range mailings {
		out = append(out, FromMailing(m))
	}
	return out
}
