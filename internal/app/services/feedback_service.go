package services

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

// feedbackStore is the persistence surface FeedbackService needs.
type feedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListByTarget(ctx context.Context, targetID int64) ([]*models.Feedback, error)
	ListBySender(ctx context.Context, senderID int64) ([]*models.Feedback, error)
	Delete(ctx context.Context, id, senderID int64) error
}

// FeedbackService lets users leave free-form notes about each other.
type FeedbackService struct {
	feedback  feedbackStore
	users     userReader
	sanitizer *bluemonday.Policy
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedback feedbackStore, users userReader) *FeedbackService {
	return &FeedbackService{
		feedback:  feedback,
		users:     users,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Create stores feedback about the target user. The text is sanitized and
// self-feedback is rejected.
func (s *FeedbackService) Create(ctx context.Context, caller *models.User, req dto.FeedbackCreateRequest) (*models.Feedback, error) {
	if req.TargetID == caller.ID {
		return nil, apperrors.NewValidationError("cannot leave feedback about yourself")
	}

	if _, err := s.users.GetByID(ctx, req.TargetID); err != nil {
		return nil, err
	}

	text := s.sanitizer.Sanitize(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("feedback text is empty")
	}

	feedback := &models.Feedback{
		SenderID: caller.ID,
		TargetID: req.TargetID,
		Text:     text,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}

// About lists all feedback left about a user.
func (s *FeedbackService) About(ctx context.Context, targetID int64) ([]*models.Feedback, error) {
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	return s.feedback.ListByTarget(ctx, targetID)
}

// Mine lists the feedback the caller has left.
func (s *FeedbackService) Mine(ctx context.Context, caller *models.User) ([]*models.Feedback, error) {
	return s.feedback.ListBySender(ctx, caller.ID)
}

// Delete removes the caller's own feedback.
func (s *FeedbackService) Delete(ctx context.Context, caller *models.User, id int64) error {
	return s.feedback.Delete(ctx, id, caller.ID)
}
