package services

import (
	"context"
	"errors"
	"testing"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

type mockVacancyStore struct {
	createFn        func(ctx context.Context, vacancy *models.Vacancy, tagNames []string) error
	getByIDFn       func(ctx context.Context, id int64) (*models.Vacancy, error)
	listFn          func(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters, offset uint64, limit int) ([]*models.Vacancy, error)
	countFn         func(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters) (int64, error)
	proposeMentorFn func(ctx context.Context, vacancyID, mentorID int64) error
	acceptOfferFn   func(ctx context.Context, vacancyID, mentorID int64) error
	declineOfferFn  func(ctx context.Context, vacancyID, mentorID int64) error
	publishFn       func(ctx context.Context, vacancyID, mentorID int64) error
	closeFn         func(ctx context.Context, vacancyID int64) error
}

func (m *mockVacancyStore) Create(ctx context.Context, vacancy *models.Vacancy, tagNames []string) error {
	return m.createFn(ctx, vacancy, tagNames)
}

func (m *mockVacancyStore) GetByID(ctx context.Context, id int64) (*models.Vacancy, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockVacancyStore) List(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters, offset uint64, limit int) ([]*models.Vacancy, error) {
	return m.listFn(ctx, statuses, filters, offset, limit)
}

func (m *mockVacancyStore) Count(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters) (int64, error) {
	return m.countFn(ctx, statuses, filters)
}

func (m *mockVacancyStore) ProposeMentor(ctx context.Context, vacancyID, mentorID int64) error {
	return m.proposeMentorFn(ctx, vacancyID, mentorID)
}

func (m *mockVacancyStore) AcceptOffer(ctx context.Context, vacancyID, mentorID int64) error {
	return m.acceptOfferFn(ctx, vacancyID, mentorID)
}

func (m *mockVacancyStore) DeclineOffer(ctx context.Context, vacancyID, mentorID int64) error {
	return m.declineOfferFn(ctx, vacancyID, mentorID)
}

func (m *mockVacancyStore) Publish(ctx context.Context, vacancyID, mentorID int64) error {
	return m.publishFn(ctx, vacancyID, mentorID)
}

func (m *mockVacancyStore) Close(ctx context.Context, vacancyID int64) error {
	return m.closeFn(ctx, vacancyID)
}

func (m *mockVacancyStore) PopularTags(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

func (m *mockVacancyStore) PopularOrganisations(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

func (m *mockVacancyStore) PopularCities(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

type mockOfferStore struct {
	getByVacancyIDFn func(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error)
	listByMentorFn   func(ctx context.Context, mentorID int64) ([]*models.MentorVacancyOffer, error)
}

func (m *mockOfferStore) GetByVacancyID(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error) {
	return m.getByVacancyIDFn(ctx, vacancyID)
}

func (m *mockOfferStore) ListByMentor(ctx context.Context, mentorID int64) ([]*models.MentorVacancyOffer, error) {
	return m.listByMentorFn(ctx, mentorID)
}

type mockUserReader struct {
	getByIDFn func(ctx context.Context, id int64) (*models.User, error)
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getByIDFn(ctx, id)
}

type mockNotifier struct {
	notifyFn func(ctx context.Context, hrID int64, mentor *models.User, vacancyTitle string) error
	calls    int
}

func (m *mockNotifier) NotifyMentorOffer(ctx context.Context, hrID int64, mentor *models.User, vacancyTitle string) error {
	m.calls++
	if m.notifyFn != nil {
		return m.notifyFn(ctx, hrID, mentor, vacancyTitle)
	}
	return nil
}

func hrUser(id int64) *models.User {
	return &models.User{ID: id, Role: models.RoleHR}
}

func mentorUser(id int64) *models.User {
	return &models.User{ID: id, Role: models.RoleMentor}
}

func TestCreateVacancy_NonHRForbidden(t *testing.T) {
	svc := NewVacancyService(&mockVacancyStore{}, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	_, err := svc.CreateVacancy(context.Background(), mentorUser(1), dto.VacancyCreateRequest{})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for mentor, got %v", err)
	}
}

func TestCreateVacancy_StartsHidden(t *testing.T) {
	var created *models.Vacancy
	store := &mockVacancyStore{
		createFn: func(ctx context.Context, vacancy *models.Vacancy, tagNames []string) error {
			vacancy.ID = 10
			created = vacancy
			return nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	req := dto.VacancyCreateRequest{
		Title:        "Backend intern",
		Description:  "Go services",
		StartDate:    date(2023, 7, 1),
		EndDate:      date(2023, 12, 31),
		Organisation: "DIT",
		Address:      "Moscow,Tverskaya,7",
		Tags:         []string{"go", "backend"},
	}

	vacancy, err := svc.CreateVacancy(context.Background(), hrUser(7), req)
	if err != nil {
		t.Fatalf("CreateVacancy returned error: %v", err)
	}
	if created.Status != models.VacancyHidden {
		t.Errorf("new vacancy should start hidden, got %s", created.Status)
	}
	if vacancy.HRID != 7 {
		t.Errorf("vacancy owner should be the calling hr, got %d", vacancy.HRID)
	}
}

func TestCreateVacancy_RejectsInvertedDates(t *testing.T) {
	svc := NewVacancyService(&mockVacancyStore{}, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	req := dto.VacancyCreateRequest{
		StartDate: date(2023, 12, 31),
		EndDate:   date(2023, 7, 1),
	}
	_, err := svc.CreateVacancy(context.Background(), hrUser(7), req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error for inverted dates, got %v", err)
	}
}

func TestGetVacancy_InvisibleReadsAsNotFound(t *testing.T) {
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 1, Status: models.VacancyHidden}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	caller := &models.User{ID: 5, Role: models.RoleCandidate}
	_, err := svc.GetVacancy(context.Background(), caller, 3)
	if !errors.Is(err, apperrors.ErrVacancyNotFound) {
		t.Errorf("hidden vacancy should read as not found for a candidate, got %v", err)
	}
}

func TestProposeMentor(t *testing.T) {
	owner := hrUser(7)
	mentor := mentorUser(42)

	vacancy := &models.Vacancy{ID: 3, Title: "Backend intern", HRID: 7, Status: models.VacancyHidden}
	proposed := false
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return vacancy, nil
		},
		proposeMentorFn: func(ctx context.Context, vacancyID, mentorID int64) error {
			proposed = true
			return nil
		},
	}
	offers := &mockOfferStore{
		getByVacancyIDFn: func(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error) {
			return &models.MentorVacancyOffer{VacancyID: vacancyID, MentorID: 42, MentorStatus: models.OfferPending}, nil
		},
	}
	users := &mockUserReader{
		getByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return mentor, nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewVacancyService(store, offers, users, notifier, nil)

	offer, err := svc.ProposeMentor(context.Background(), owner, 3, 42)
	if err != nil {
		t.Fatalf("ProposeMentor returned error: %v", err)
	}
	if !proposed {
		t.Error("expected the proposal to reach the store")
	}
	if offer.MentorStatus != models.OfferPending {
		t.Errorf("new offer should be pending, got %s", offer.MentorStatus)
	}
	if notifier.calls != 1 {
		t.Errorf("expected exactly one mentor notification, got %d", notifier.calls)
	}
}

func TestProposeMentor_ForeignHRForbidden(t *testing.T) {
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, Status: models.VacancyHidden}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	_, err := svc.ProposeMentor(context.Background(), hrUser(8), 3, 42)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for non-owning hr, got %v", err)
	}
}

func TestProposeMentor_AlreadyOfferedConflicts(t *testing.T) {
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, Status: models.VacancyPending}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	_, err := svc.ProposeMentor(context.Background(), hrUser(7), 3, 42)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected conflict for a pending vacancy, got %v", err)
	}
}

func TestProposeMentor_NonMentorTargetNotFound(t *testing.T) {
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, Status: models.VacancyHidden}, nil
		},
	}
	users := &mockUserReader{
		getByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleCandidate}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, users, nil, nil)

	_, err := svc.ProposeMentor(context.Background(), hrUser(7), 3, 42)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected user not found when the target is not a mentor, got %v", err)
	}
}

func TestProposeMentor_DeliveryFailureKeepsState(t *testing.T) {
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, Status: models.VacancyHidden}, nil
		},
		proposeMentorFn: func(ctx context.Context, vacancyID, mentorID int64) error {
			return nil
		},
	}
	offers := &mockOfferStore{
		getByVacancyIDFn: func(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error) {
			return &models.MentorVacancyOffer{VacancyID: vacancyID, MentorID: 42, MentorStatus: models.OfferPending}, nil
		},
	}
	users := &mockUserReader{
		getByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return mentorUser(id), nil
		},
	}
	notifier := &mockNotifier{
		notifyFn: func(ctx context.Context, hrID int64, mentor *models.User, vacancyTitle string) error {
			return apperrors.ErrMailDelivery
		},
	}
	svc := NewVacancyService(store, offers, users, notifier, nil)

	offer, err := svc.ProposeMentor(context.Background(), hrUser(7), 3, 42)
	if !errors.Is(err, apperrors.ErrMailDelivery) {
		t.Fatalf("expected mail delivery error, got %v", err)
	}
	if offer == nil {
		t.Error("the committed offer should still be returned on delivery failure")
	}
}

func TestDeclineOffer_ThenReproposeSucceeds(t *testing.T) {
	vacancy := &models.Vacancy{ID: 3, Title: "Backend intern", HRID: 7, Status: models.VacancyHidden}
	var offer *models.MentorVacancyOffer
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return vacancy, nil
		},
		proposeMentorFn: func(ctx context.Context, vacancyID, mentorID int64) error {
			// A declined leftover is replaced; a live offer conflicts.
			if offer != nil && offer.MentorStatus != models.OfferDeclined {
				return apperrors.ErrOfferAlreadyExists
			}
			offer = &models.MentorVacancyOffer{VacancyID: vacancyID, MentorID: mentorID, MentorStatus: models.OfferPending}
			vacancy.Status = models.VacancyPending
			return nil
		},
		declineOfferFn: func(ctx context.Context, vacancyID, mentorID int64) error {
			offer.MentorStatus = models.OfferDeclined
			vacancy.Status = models.VacancyHidden
			return nil
		},
	}
	offers := &mockOfferStore{
		getByVacancyIDFn: func(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error) {
			return offer, nil
		},
	}
	users := &mockUserReader{
		getByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return mentorUser(id), nil
		},
	}
	svc := NewVacancyService(store, offers, users, nil, nil)

	if _, err := svc.ProposeMentor(context.Background(), hrUser(7), 3, 42); err != nil {
		t.Fatalf("first proposal returned error: %v", err)
	}
	if err := svc.DeclineOffer(context.Background(), mentorUser(42), 3); err != nil {
		t.Fatalf("DeclineOffer returned error: %v", err)
	}
	if vacancy.Status != models.VacancyHidden {
		t.Fatalf("declined vacancy should return to hidden, got %s", vacancy.Status)
	}

	second, err := svc.ProposeMentor(context.Background(), hrUser(7), 3, 43)
	if err != nil {
		t.Fatalf("re-proposing after a decline returned error: %v", err)
	}
	if second.MentorID != 43 || second.MentorStatus != models.OfferPending {
		t.Errorf("the declined offer should be replaced, got %+v", second)
	}
}

func TestAcceptOffer_OnlyMentors(t *testing.T) {
	svc := NewVacancyService(&mockVacancyStore{}, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	err := svc.AcceptOffer(context.Background(), hrUser(7), 3)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for hr, got %v", err)
	}
}

func TestAcceptOffer_BusyMentorConflicts(t *testing.T) {
	store := &mockVacancyStore{
		acceptOfferFn: func(ctx context.Context, vacancyID, mentorID int64) error {
			return apperrors.ErrMentorBusy
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	err := svc.AcceptOffer(context.Background(), mentorUser(42), 3)
	if !errors.Is(err, apperrors.ErrMentorBusy) {
		t.Errorf("expected mentor busy error, got %v", err)
	}
}

func TestPublishVacancy(t *testing.T) {
	mentorID := int64(42)
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, MentorID: &mentorID, Status: models.VacancyAccepted}, nil
		},
		publishFn: func(ctx context.Context, vacancyID, callerID int64) error {
			return nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	if err := svc.PublishVacancy(context.Background(), mentorUser(42), 3); err != nil {
		t.Errorf("PublishVacancy returned error: %v", err)
	}
}

func TestPublishVacancy_OtherMentorForbidden(t *testing.T) {
	mentorID := int64(42)
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, MentorID: &mentorID, Status: models.VacancyAccepted}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	err := svc.PublishVacancy(context.Background(), mentorUser(43), 3)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for a different mentor, got %v", err)
	}
}

func TestPublishVacancy_NotAcceptedConflicts(t *testing.T) {
	mentorID := int64(42)
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, MentorID: &mentorID, Status: models.VacancyPublished}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	err := svc.PublishVacancy(context.Background(), mentorUser(42), 3)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected conflict for already published vacancy, got %v", err)
	}
}

func TestDeleteVacancy(t *testing.T) {
	closed := false
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, Status: models.VacancyPublished}, nil
		},
		closeFn: func(ctx context.Context, vacancyID int64) error {
			closed = true
			return nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	if err := svc.DeleteVacancy(context.Background(), hrUser(7), 3); err != nil {
		t.Fatalf("DeleteVacancy returned error: %v", err)
	}
	if !closed {
		t.Error("expected the vacancy to be closed")
	}
}

func TestDeleteVacancy_ForeignHRForbidden(t *testing.T) {
	store := &mockVacancyStore{
		getByIDFn: func(ctx context.Context, id int64) (*models.Vacancy, error) {
			return &models.Vacancy{ID: id, HRID: 7, Status: models.VacancyPublished}, nil
		},
	}
	svc := NewVacancyService(store, &mockOfferStore{}, &mockUserReader{}, nil, nil)

	err := svc.DeleteVacancy(context.Background(), hrUser(8), 3)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for non-owning hr, got %v", err)
	}
}
