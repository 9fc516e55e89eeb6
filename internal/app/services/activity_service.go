package services

import (
	"context"

	"github.com/EgorTarasov/ldt-2023/internal/app/auth"
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/helpers"
)

// eventStore is the persistence surface ActivityService needs.
type eventStore interface {
	List(ctx context.Context) ([]*models.Event, error)
	CandidateActivity(ctx context.Context, offset uint64, limit int) ([]*models.CandidateActivity, error)
	CountCandidates(ctx context.Context) (int64, error)
	CandidateEventScores(ctx context.Context, userID int64) ([]*models.CandidateEventScore, error)
}

// ActivityService exposes the candidate scoring track: events, the
// leaderboard and per-candidate breakdowns.
type ActivityService struct {
	events eventStore
}

// NewActivityService creates a new activity service
func NewActivityService(events eventStore) *ActivityService {
	return &ActivityService{
		events: events,
	}
}

// Events lists all educational-track events.
func (s *ActivityService) Events(ctx context.Context) ([]*models.Event, error) {
	return s.events.List(ctx)
}

// Leaderboard returns a page of candidates ordered by total score.
// Curators and HR may browse it.
func (s *ActivityService) Leaderboard(ctx context.Context, caller *models.User, page, size int) ([]*models.CandidateActivity, dto.PaginationInfo, error) {
	if caller.Role != models.RoleCurator && caller.Role != models.RoleHR {
		return nil, dto.PaginationInfo{}, apperrors.NewForbiddenError("only curators and hr can view the leaderboard")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	activities, err := s.events.CandidateActivity(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.events.CountCandidates(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return activities, helpers.NewPaginationInfo(total, page, size), nil
}

// Breakdown returns the per-event scores for one candidate. Candidates see
// their own; curators see anyone's.
func (s *ActivityService) Breakdown(ctx context.Context, caller *models.User, userID int64) ([]*models.CandidateEventScore, error) {
	if caller.ID != userID && !auth.CanReviewApplications(caller) {
		return nil, apperrors.NewForbiddenError("cannot view another candidate's scores")
	}
	return s.events.CandidateEventScores(ctx, userID)
}
