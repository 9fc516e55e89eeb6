package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

type mockApplicationStore struct {
	upsertFn       func(ctx context.Context, app *models.InternApplication) error
	getByIDFn      func(ctx context.Context, id int64) (*models.InternApplication, error)
	listFn         func(ctx context.Context, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.InternApplication, error)
	countFn        func(ctx context.Context, status *models.ApplicationStatus) (int64, error)
	updateStatusFn func(ctx context.Context, id int64, status models.ApplicationStatus) error
	statusCountsFn func(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}

func (m *mockApplicationStore) Upsert(ctx context.Context, app *models.InternApplication) error {
	return m.upsertFn(ctx, app)
}

func (m *mockApplicationStore) GetByID(ctx context.Context, id int64) (*models.InternApplication, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockApplicationStore) List(ctx context.Context, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.InternApplication, error) {
	return m.listFn(ctx, status, offset, limit)
}

func (m *mockApplicationStore) Count(ctx context.Context, status *models.ApplicationStatus) (int64, error) {
	return m.countFn(ctx, status)
}

func (m *mockApplicationStore) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockApplicationStore) StatusCounts(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	return m.statusCountsFn(ctx)
}

type mockInviteNotifier struct {
	calls int
	err   error
}

func (m *mockInviteNotifier) NotifyInternInvite(ctx context.Context, curatorID int64, applicant *models.User) error {
	m.calls++
	return m.err
}

func candidateUser(id int64, birthday time.Time) *models.User {
	return &models.User{ID: id, Role: models.RoleCandidate, Birthday: birthday}
}

func curatorUser(id int64) *models.User {
	return &models.User{ID: id, Role: models.RoleCurator}
}

func validApplicationRequest() dto.ApplicationCreateRequest {
	return dto.ApplicationCreateRequest{
		Course:         "3",
		Education:      "Bauman MSTU",
		Resume:         "Go developer",
		Citizenship:    "Russian Federation",
		GraduationDate: "2024-06-30",
		City:           "Moscow",
	}
}

func newApplicationService(store *mockApplicationStore, users userReader, notifier inviteNotifier, now time.Time) *ApplicationService {
	svc := NewApplicationService(store, users, notifier)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubmit_ScreensEligibleApplicant(t *testing.T) {
	var stored *models.InternApplication
	store := &mockApplicationStore{
		upsertFn: func(ctx context.Context, app *models.InternApplication) error {
			stored = app
			return nil
		},
	}
	svc := newApplicationService(store, &mockUserReader{}, nil, date(2023, 6, 1))

	caller := candidateUser(5, date(2001, 3, 15))
	app, err := svc.Submit(context.Background(), caller, validApplicationRequest())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if app.Status != models.ApplicationVerified {
		t.Errorf("eligible applicant should screen as verified, got %s", app.Status)
	}
	if stored.Citizenship != "RU" {
		t.Errorf("citizenship should be normalized to alpha-2, got %q", stored.Citizenship)
	}
	if stored.ID != 5 {
		t.Errorf("application id should be the applicant's user id, got %d", stored.ID)
	}
}

func TestSubmit_ForeignApplicantUnverified(t *testing.T) {
	store := &mockApplicationStore{
		upsertFn: func(ctx context.Context, app *models.InternApplication) error { return nil },
	}
	svc := newApplicationService(store, &mockUserReader{}, nil, date(2023, 6, 1))

	req := validApplicationRequest()
	req.Citizenship = "Kazakhstan"
	app, err := svc.Submit(context.Background(), candidateUser(5, date(2001, 3, 15)), req)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if app.Status != models.ApplicationUnverified {
		t.Errorf("foreign applicant should screen as unverified, got %s", app.Status)
	}
}

func TestSubmit_UnknownCountryRejected(t *testing.T) {
	svc := newApplicationService(&mockApplicationStore{}, &mockUserReader{}, nil, date(2023, 6, 1))

	req := validApplicationRequest()
	req.Citizenship = "Atlantis"
	_, err := svc.Submit(context.Background(), candidateUser(5, date(2001, 3, 15)), req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error for unknown country, got %v", err)
	}
}

func TestSubmit_SanitizesResume(t *testing.T) {
	var stored *models.InternApplication
	store := &mockApplicationStore{
		upsertFn: func(ctx context.Context, app *models.InternApplication) error {
			stored = app
			return nil
		},
	}
	svc := newApplicationService(store, &mockUserReader{}, nil, date(2023, 6, 1))

	req := validApplicationRequest()
	req.Resume = `Go developer<script>alert("x")</script>`
	if _, err := svc.Submit(context.Background(), candidateUser(5, date(2001, 3, 15)), req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if stored.Resume != "Go developer" {
		t.Errorf("script tags should be stripped from the resume, got %q", stored.Resume)
	}
}

func TestSubmit_NonCandidateForbidden(t *testing.T) {
	svc := newApplicationService(&mockApplicationStore{}, &mockUserReader{}, nil, date(2023, 6, 1))

	_, err := svc.Submit(context.Background(), curatorUser(1), validApplicationRequest())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for curator, got %v", err)
	}
}

func TestApprove_SendsInvite(t *testing.T) {
	updated := models.ApplicationStatus("")
	store := &mockApplicationStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.InternApplication, error) {
			return &models.InternApplication{ID: id, Status: models.ApplicationVerified}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status models.ApplicationStatus) error {
			updated = status
			return nil
		},
	}
	users := &mockUserReader{
		getByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "intern@test.com", FIO: "Petrov Petr"}, nil
		},
	}
	notifier := &mockInviteNotifier{}
	svc := newApplicationService(store, users, notifier, date(2023, 6, 1))

	if err := svc.Approve(context.Background(), curatorUser(1), 5); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if updated != models.ApplicationApproved {
		t.Errorf("expected status approved, got %s", updated)
	}
	if notifier.calls != 1 {
		t.Errorf("expected one invite notification, got %d", notifier.calls)
	}
}

func TestApprove_IdempotentOnApproved(t *testing.T) {
	store := &mockApplicationStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.InternApplication, error) {
			return &models.InternApplication{ID: id, Status: models.ApplicationApproved}, nil
		},
	}
	notifier := &mockInviteNotifier{}
	svc := newApplicationService(store, &mockUserReader{}, notifier, date(2023, 6, 1))

	if err := svc.Approve(context.Background(), curatorUser(1), 5); err != nil {
		t.Fatalf("approving an approved application should be a no-op, got %v", err)
	}
	if notifier.calls != 0 {
		t.Errorf("no invite should be re-sent, got %d calls", notifier.calls)
	}
}

func TestApprove_DeclinedConflicts(t *testing.T) {
	store := &mockApplicationStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.InternApplication, error) {
			return &models.InternApplication{ID: id, Status: models.ApplicationDeclined}, nil
		},
	}
	svc := newApplicationService(store, &mockUserReader{}, nil, date(2023, 6, 1))

	err := svc.Approve(context.Background(), curatorUser(1), 5)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected conflict approving a declined application, got %v", err)
	}
}

func TestDecline_ApprovedConflicts(t *testing.T) {
	store := &mockApplicationStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.InternApplication, error) {
			return &models.InternApplication{ID: id, Status: models.ApplicationApproved}, nil
		},
	}
	svc := newApplicationService(store, &mockUserReader{}, nil, date(2023, 6, 1))

	err := svc.Decline(context.Background(), curatorUser(1), 5)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected conflict declining an approved application, got %v", err)
	}
}

func TestApprove_NonCuratorForbidden(t *testing.T) {
	svc := newApplicationService(&mockApplicationStore{}, &mockUserReader{}, nil, date(2023, 6, 1))

	err := svc.Approve(context.Background(), candidateUser(5, date(2001, 1, 1)), 5)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for candidate, got %v", err)
	}
}

func TestStats(t *testing.T) {
	store := &mockApplicationStore{
		statusCountsFn: func(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
			return map[models.ApplicationStatus]int64{
				models.ApplicationUnverified: 2,
				models.ApplicationVerified:   3,
				models.ApplicationApproved:   1,
			}, nil
		},
	}
	svc := newApplicationService(store, &mockUserReader{}, nil, date(2023, 6, 1))

	stats, err := svc.Stats(context.Background(), curatorUser(1))
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 6 {
		t.Errorf("expected total 6, got %d", stats.Total)
	}
	if stats.Declined != 0 {
		t.Errorf("missing statuses should count as zero, got %d", stats.Declined)
	}
}
