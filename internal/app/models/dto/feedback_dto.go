package dto

import (
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// FeedbackCreateRequest is the payload for leaving feedback about a user.
type FeedbackCreateRequest struct {
	TargetID int64  `json:"targetId" binding:"required,min=1" example:"2"`
	Text     string `json:"text" binding:"required" example:"Great mentor"`
}

// FeedbackResponse is the public feedback representation.
type FeedbackResponse struct {
	ID       int64  `json:"id" example:"1"`
	SenderID int64  `json:"senderId" example:"1"`
	TargetID int64  `json:"targetId" example:"2"`
	Text     string `json:"text"`
}

// FromFeedback converts a models.Feedback to a FeedbackResponse.
func FromFeedback(f *models.Feedback) FeedbackResponse {
	if f == nil {
		return FeedbackResponse{}
	}
	return FeedbackResponse{
		ID:       f.ID,
		SenderID: f.SenderID,
		TargetID: f.TargetID,
		Text:     f.Text,
	}
}

// FromFeedbacks converts a slice of feedback rows.
func FromFeedbacks(feedbacks []*models.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		out = append(out, FromFeedback(f))
	}
	return out
}
