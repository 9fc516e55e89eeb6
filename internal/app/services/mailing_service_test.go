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

type mockMailingStore struct {
	records []*models.Mailing
	err     error
}

func (m *mockMailingStore) Create(ctx context.Context, mailing *models.Mailing) error {
	if m.err != nil {
		return m.err
	}
	mailing.ID = int64(len(m.records) + 1)
	m.records = append(m.records, mailing)
	return nil
}

func (m *mockMailingStore) ListByTarget(ctx context.Context, targetID int64) ([]*models.Mailing, error) {
	return m.records, nil
}

type mockRecipientStore struct {
	createFn     func(ctx context.Context, user *models.User) error
	listByRoleFn func(ctx context.Context, role models.Role) ([]*models.User, error)
}

func (m *mockRecipientStore) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}

func (m *mockRecipientStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (m *mockRecipientStore) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return m.listByRoleFn(ctx, role)
}

type mockApprovedLister struct {
	users []*models.User
}

func (m *mockApprovedLister) ListApprovedApplicants(ctx context.Context) ([]*models.User, error) {
	return m.users, nil
}

type mockEventReader struct {
	event *models.Event
}

func (m *mockEventReader) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	if m.event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return m.event, nil
}

// fakeMailer fails delivery to the emails listed in failFor.
type fakeMailer struct {
	sent    []string
	failFor map[string]bool
}

func (m *fakeMailer) deliver(toEmail string) error {
	if m.failFor[toEmail] {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func (m *fakeMailer) SendMentorOffer(toEmail, toName, vacancyTitle string) error {
	return m.deliver(toEmail)
}

func (m *fakeMailer) SendInternInvite(toEmail, toName string) error {
	return m.deliver(toEmail)
}

func (m *fakeMailer) SendSchoolInvite(toEmail, toName, message string) error {
	return m.deliver(toEmail)
}

func (m *fakeMailer) SendEventInfo(toEmail, toName, eventTitle string, startsAt time.Time) error {
	return m.deliver(toEmail)
}

func (m *fakeMailer) SendEventReminder(toEmail, toName, eventTitle string, startsAt time.Time) error {
	return m.deliver(toEmail)
}

func (m *fakeMailer) SendCredentials(toEmail, toName, password string) error {
	return m.deliver(toEmail)
}

func newMailingService(store *mockMailingStore, users *mockRecipientStore, approved *mockApprovedLister, events *mockEventReader, mailer *fakeMailer) *MailingService {
	svc := NewMailingService(store, users, approved, events, mailer)
	svc.now = func() time.Time { return date(2023, 6, 1) }
	return svc
}

func TestNotifyMentorOffer_RecordsBeforeSending(t *testing.T) {
	store := &mockMailingStore{}
	mailer := &fakeMailer{}
	svc := newMailingService(store, &mockRecipientStore{}, &mockApprovedLister{}, &mockEventReader{}, mailer)

	mentor := &models.User{ID: 42, Email: "mentor@test.com", FIO: "Sidorov Ivan"}
	if err := svc.NotifyMentorOffer(context.Background(), 7, mentor, "Backend intern"); err != nil {
		t.Fatalf("NotifyMentorOffer returned error: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one mailing record, got %d", len(store.records))
	}
	if store.records[0].TargetID != 42 || store.records[0].SenderID != 7 {
		t.Errorf("mailing record has wrong parties: %+v", store.records[0])
	}
	if len(mailer.sent) != 1 {
		t.Errorf("expected one delivery, got %d", len(mailer.sent))
	}
}

func TestNotifyMentorOffer_DeliveryFailureKeepsRecord(t *testing.T) {
	store := &mockMailingStore{}
	mailer := &fakeMailer{failFor: map[string]bool{"mentor@test.com": true}}
	svc := newMailingService(store, &mockRecipientStore{}, &mockApprovedLister{}, &mockEventReader{}, mailer)

	mentor := &models.User{ID: 42, Email: "mentor@test.com"}
	err := svc.NotifyMentorOffer(context.Background(), 7, mentor, "Backend intern")
	if !errors.Is(err, apperrors.ErrMailDelivery) {
		t.Fatalf("expected mail delivery error, got %v", err)
	}
	if len(store.records) != 1 {
		t.Errorf("the mailing record should persist on delivery failure, got %d records", len(store.records))
	}
}

func TestSchoolInvite(t *testing.T) {
	store := &mockMailingStore{}
	mailer := &fakeMailer{}
	approved := &mockApprovedLister{users: []*models.User{
		{ID: 1, Email: "a@test.com", FIO: "A"},
		{ID: 2, Email: "b@test.com", FIO: "B"},
	}}
	svc := newMailingService(store, &mockRecipientStore{}, approved, &mockEventReader{}, mailer)

	sent, err := svc.SchoolInvite(context.Background(), curatorUser(9), dto.SchoolInviteRequest{Subject: "School", Message: "Welcome"})
	if err != nil {
		t.Fatalf("SchoolInvite returned error: %v", err)
	}
	if sent != 2 {
		t.Errorf("expected 2 invites sent, got %d", sent)
	}
	if len(store.records) != 2 {
		t.Errorf("expected 2 mailing records, got %d", len(store.records))
	}
}

func TestSchoolInvite_PartialFailure(t *testing.T) {
	store := &mockMailingStore{}
	mailer := &fakeMailer{failFor: map[string]bool{"b@test.com": true}}
	approved := &mockApprovedLister{users: []*models.User{
		{ID: 1, Email: "a@test.com"},
		{ID: 2, Email: "b@test.com"},
		{ID: 3, Email: "c@test.com"},
	}}
	svc := newMailingService(store, &mockRecipientStore{}, approved, &mockEventReader{}, mailer)

	sent, err := svc.SchoolInvite(context.Background(), curatorUser(9), dto.SchoolInviteRequest{Subject: "School"})
	if !errors.Is(err, apperrors.ErrMailDelivery) {
		t.Fatalf("expected mail delivery error, got %v", err)
	}
	if sent != 2 {
		t.Errorf("the remaining recipients should still be attempted, sent %d", sent)
	}
	if len(store.records) != 3 {
		t.Errorf("every attempt should be recorded, got %d records", len(store.records))
	}
}

func TestSchoolInvite_NonCuratorForbidden(t *testing.T) {
	svc := newMailingService(&mockMailingStore{}, &mockRecipientStore{}, &mockApprovedLister{}, &mockEventReader{}, &fakeMailer{})

	_, err := svc.SchoolInvite(context.Background(), hrUser(7), dto.SchoolInviteRequest{Subject: "School"})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied for hr, got %v", err)
	}
}

func TestEventInfo_MailsCandidates(t *testing.T) {
	store := &mockMailingStore{}
	mailer := &fakeMailer{}
	users := &mockRecipientStore{
		listByRoleFn: func(ctx context.Context, role models.Role) ([]*models.User, error) {
			if role != models.RoleCandidate {
				t.Errorf("event mailings should target candidates, got %s", role)
			}
			return []*models.User{{ID: 1, Email: "a@test.com"}}, nil
		},
	}
	events := &mockEventReader{event: &models.Event{ID: 3, Title: "Open day", StartTime: date(2023, 7, 1)}}
	svc := newMailingService(store, users, &mockApprovedLister{}, events, mailer)

	sent, err := svc.EventInfo(context.Background(), curatorUser(9), dto.EventMailingRequest{EventID: 3})
	if err != nil {
		t.Fatalf("EventInfo returned error: %v", err)
	}
	if sent != 1 {
		t.Errorf("expected 1 mailing sent, got %d", sent)
	}
}

func TestEventInfo_UnknownEvent(t *testing.T) {
	svc := newMailingService(&mockMailingStore{}, &mockRecipientStore{}, &mockApprovedLister{}, &mockEventReader{}, &fakeMailer{})

	_, err := svc.EventInfo(context.Background(), curatorUser(9), dto.EventMailingRequest{EventID: 404})
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Errorf("expected event not found, got %v", err)
	}
}

func TestIssueCredentials(t *testing.T) {
	store := &mockMailingStore{}
	mailer := &fakeMailer{}
	var created *models.User
	users := &mockRecipientStore{
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = 77
			created = user
			return nil
		},
	}
	svc := newMailingService(store, users, &mockApprovedLister{}, &mockEventReader{}, mailer)

	req := dto.CredentialsRequest{
		Email:    "intern@test.com",
		FIO:      "Petrov Petr",
		Role:     "intern",
		Birthday: "2001-05-20",
	}
	user, err := svc.IssueCredentials(context.Background(), curatorUser(9), req)
	if err != nil {
		t.Fatalf("IssueCredentials returned error: %v", err)
	}
	if user.ID != 77 || created.Role != models.RoleIntern {
		t.Errorf("unexpected created user: %+v", created)
	}
	if created.Password == "" {
		t.Error("a password hash should be generated for the new account")
	}
	if len(store.records) != 1 {
		t.Errorf("the credentials mailing should be recorded, got %d records", len(store.records))
	}
}

func TestIssueCredentials_UnknownRole(t *testing.T) {
	svc := newMailingService(&mockMailingStore{}, &mockRecipientStore{}, &mockApprovedLister{}, &mockEventReader{}, &fakeMailer{})

	req := dto.CredentialsRequest{Email: "x@test.com", FIO: "X", Role: "janitor", Birthday: "2001-05-20"}
	_, err := svc.IssueCredentials(context.Background(), curatorUser(9), req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error for unknown role, got %v", err)
	}
}

func TestIssueCredentials_HRIssuesIntern(t *testing.T) {
	users := &mockRecipientStore{
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = 78
			return nil
		},
	}
	svc := newMailingService(&mockMailingStore{}, users, &mockApprovedLister{}, &mockEventReader{}, &fakeMailer{})

	req := dto.CredentialsRequest{Email: "hire@test.com", FIO: "Sidorova Anna", Role: "intern", Birthday: "2002-03-14"}
	user, err := svc.IssueCredentials(context.Background(), hrUser(7), req)
	if err != nil {
		t.Fatalf("hr should be able to issue intern credentials: %v", err)
	}
	if user.Role != models.RoleIntern {
		t.Errorf("unexpected role %s", user.Role)
	}
}

func TestIssueCredentials_HRCannotMintCurator(t *testing.T) {
	svc := newMailingService(&mockMailingStore{}, &mockRecipientStore{}, &mockApprovedLister{}, &mockEventReader{}, &fakeMailer{})

	req := dto.CredentialsRequest{Email: "boss@test.com", FIO: "B", Role: "curator", Birthday: "1990-01-01"}
	_, err := svc.IssueCredentials(context.Background(), hrUser(7), req)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied, got %v", err)
	}
}
