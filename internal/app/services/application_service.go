package services

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/EgorTarasov/ldt-2023/internal/app/auth"
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/country"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/helpers"
)

// applicationStore is the persistence surface ApplicationService needs.
type applicationStore interface {
	Upsert(ctx context.Context, app *models.InternApplication) error
	GetByID(ctx context.Context, id int64) (*models.InternApplication, error)
	List(ctx context.Context, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.InternApplication, error)
	Count(ctx context.Context, status *models.ApplicationStatus) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	StatusCounts(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}

// inviteNotifier delivers the approval email to the applicant.
type inviteNotifier interface {
	NotifyInternInvite(ctx context.Context, curatorID int64, applicant *models.User) error
}

// ApplicationService handles intern application submission, screening and
// curator review.
type ApplicationService struct {
	applications applicationStore
	users        userReader
	notifier     inviteNotifier
	sanitizer    *bluemonday.Policy
	now          func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(applications applicationStore, users userReader, notifier inviteNotifier) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		users:        users,
		notifier:     notifier,
		sanitizer:    bluemonday.UGCPolicy(),
		now:          time.Now,
	}
}

// Submit stores the caller's application. The citizenship name is
// normalized to an alpha-2 code and the application is screened
// immediately; resubmission replaces the previous application.
func (s *ApplicationService) Submit(ctx context.Context, caller *models.User, req dto.ApplicationCreateRequest) (*models.InternApplication, error) {
	if caller.Role != models.RoleCandidate {
		return nil, apperrors.NewForbiddenError("only candidates can apply for an internship")
	}

	citizenship, err := country.Alpha2(req.Citizenship)
	if err != nil {
		return nil, &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "unknown citizenship country"}
	}

	graduation, err := time.Parse(dto.DateFormat, req.GraduationDate)
	if err != nil {
		return nil, apperrors.NewValidationError("graduation date must be formatted as YYYY-MM-DD")
	}

	app := &models.InternApplication{
		ID:             caller.ID,
		Course:         req.Course,
		Education:      s.sanitizer.Sanitize(req.Education),
		Resume:         s.sanitizer.Sanitize(req.Resume),
		Citizenship:    citizenship,
		GraduationDate: graduation,
		City:           req.City,
	}
	app.Status = ScreenApplication(app, caller.Birthday, s.now())

	if err := s.applications.Upsert(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Get returns an application. Applicants see their own; curators see any.
func (s *ApplicationService) Get(ctx context.Context, caller *models.User, id int64) (*models.InternApplication, error) {
	if caller.ID != id && !auth.CanReviewApplications(caller) {
		return nil, apperrors.NewForbiddenError("cannot view another user's application")
	}
	return s.applications.GetByID(ctx, id)
}

// List returns a page of applications for curator review, optionally
// narrowed to one status.
func (s *ApplicationService) List(ctx context.Context, caller *models.User, status *models.ApplicationStatus, page, size int) ([]*models.InternApplication, dto.PaginationInfo, error) {
	if !auth.CanReviewApplications(caller) {
		return nil, dto.PaginationInfo{}, apperrors.NewForbiddenError("only curators can list applications")
	}
	if status != nil && !status.Valid() {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("unknown application status")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	apps, err := s.applications.List(ctx, status, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.applications.Count(ctx, status)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return apps, helpers.NewPaginationInfo(total, page, size), nil
}

// Approve accepts an application. Approving an approved application is a
// no-op; approving a declined one is a conflict. The applicant is invited
// by email once the new status is stored.
func (s *ApplicationService) Approve(ctx context.Context, caller *models.User, id int64) error {
	if !auth.CanReviewApplications(caller) {
		return apperrors.NewForbiddenError("only curators can approve applications")
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch app.Status {
	case models.ApplicationApproved:
		return nil
	case models.ApplicationDeclined:
		return apperrors.NewConflictError("application has already been declined")
	}

	if err := s.applications.UpdateStatus(ctx, id, models.ApplicationApproved); err != nil {
		return err
	}

	applicant, err := s.users.GetByID(ctx, id)
	if err != nil {
		// Approval is stored; surface the lookup failure as-is.
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyInternInvite(ctx, caller.ID, applicant); err != nil {
			return err
		}
	}

	return nil
}

// Decline rejects an application. Declining a declined application is a
// no-op; declining an approved one is a conflict.
func (s *ApplicationService) Decline(ctx context.Context, caller *models.User, id int64) error {
	if !auth.CanReviewApplications(caller) {
		return apperrors.NewForbiddenError("only curators can decline applications")
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch app.Status {
	case models.ApplicationDeclined:
		return nil
	case models.ApplicationApproved:
		return apperrors.NewConflictError("application has already been approved")
	}

	return s.applications.UpdateStatus(ctx, id, models.ApplicationDeclined)
}

// Stats returns per-status application counts for curators.
func (s *ApplicationService) Stats(ctx context.Context, caller *models.User) (*dto.ApplicationStatsResponse, error) {
	if !auth.CanReviewApplications(caller) {
		return nil, apperrors.NewForbiddenError("only curators can view application stats")
	}

	counts, err := s.applications.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.ApplicationStatsResponse{
		Unverified: counts[models.ApplicationUnverified],
		Verified:   counts[models.ApplicationVerified],
		Approved:   counts[models.ApplicationApproved],
		Declined:   counts[models.ApplicationDeclined],
	}
	stats.Total = stats.Unverified + stats.Verified + stats.Approved + stats.Declined

	return stats, nil
}
