package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EgorTarasov/ldt-2023/internal/app/auth"
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	pkgauth "github.com/EgorTarasov/ldt-2023/internal/pkg/auth"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/email"
)

// mailingStore records sent mail.
type mailingStore interface {
	Create(ctx context.Context, mailing *models.Mailing) error
	ListByTarget(ctx context.Context, targetID int64) ([]*models.Mailing, error)
}

// recipientStore resolves mailing audiences and creates issued accounts.
type recipientStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// approvedApplicantLister resolves the school-invite audience.
type approvedApplicantLister interface {
	ListApprovedApplicants(ctx context.Context) ([]*models.User, error)
}

// eventReader looks up events for event mailings.
type eventReader interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// MailingService sends templated emails and records each one. The record
// is written before the send, so delivery failures never lose history and
// the triggering state change always persists.
type MailingService struct {
	mailings mailingStore
	users    recipientStore
	approved approvedApplicantLister
	events   eventReader
	mailer   email.EmailService
	now      func() time.Time
}

// NewMailingService creates a new mailing service
func NewMailingService(mailings mailingStore, users recipientStore, approved approvedApplicantLister, events eventReader, mailer email.EmailService) *MailingService {
	return &MailingService{
		mailings: mailings,
		users:    users,
		approved: approved,
		events:   events,
		mailer:   mailer,
		now:      time.Now,
	}
}

// sendRecorded writes the mailing row, then attempts delivery. A delivery
// failure surfaces as ErrMailDelivery with the record kept.
func (s *MailingService) sendRecorded(ctx context.Context, senderID, targetID int64, subject, message string, send func() error) error {
	mailing := &models.Mailing{
		SenderID: senderID,
		TargetID: targetID,
		TimeSent: s.now(),
		Subject:  subject,
		Message:  message,
	}
	if err := s.mailings.Create(ctx, mailing); err != nil {
		return err
	}

	if err := send(); err != nil {
		return &apperrors.CustomError{Err: apperrors.ErrMailDelivery, Message: "failed to deliver email"}
	}

	return nil
}

// NotifyMentorOffer emails a mentor about a newly proposed vacancy.
func (s *MailingService) NotifyMentorOffer(ctx context.Context, hrID int64, mentor *models.User, vacancyTitle string) error {
	subject := "New mentorship offer"
	return s.sendRecorded(ctx, hrID, mentor.ID, subject, vacancyTitle, func() error {
		return s.mailer.SendMentorOffer(mentor.Email, mentor.FIO, vacancyTitle)
	})
}

// NotifyInternInvite emails an applicant whose application was approved.
func (s *MailingService) NotifyInternInvite(ctx context.Context, curatorID int64, applicant *models.User) error {
	subject := "Your internship application is approved"
	return s.sendRecorded(ctx, curatorID, applicant.ID, subject, "", func() error {
		return s.mailer.SendInternInvite(applicant.Email, applicant.FIO)
	})
}

// SchoolInvite mails every approved applicant a school invitation. All
// recipients are attempted; any failed delivery surfaces as one delivery
// error after the loop.
func (s *MailingService) SchoolInvite(ctx context.Context, caller *models.User, req dto.SchoolInviteRequest) (int, error) {
	if !auth.CanReviewApplications(caller) {
		return 0, apperrors.NewForbiddenError("only curators can send school invites")
	}

	recipients, err := s.approved.ListApprovedApplicants(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	failed := 0
	for _, recipient := range recipients {
		r := recipient
		err := s.sendRecorded(ctx, caller.ID, r.ID, req.Subject, req.Message, func() error {
			return s.mailer.SendSchoolInvite(r.Email, r.FIO, req.Message)
		})
		if err != nil {
			failed++
			continue
		}
		sent++
	}

	if failed > 0 {
		return sent, &apperrors.CustomError{
			Err:     apperrors.ErrMailDelivery,
			Message: "some school invites failed to deliver",
			Details: map[string]interface{}{"sent": sent, "failed": failed},
		}
	}

	return sent, nil
}

// EventInfo mails every candidate an event announcement.
func (s *MailingService) EventInfo(ctx context.Context, caller *models.User, req dto.EventMailingRequest) (int, error) {
	return s.eventMailing(ctx, caller, req, func(event *models.Event, r *models.User) error {
		return s.mailer.SendEventInfo(r.Email, r.FIO, event.Title, event.StartTime)
	})
}

// EventReminder mails every candidate an event reminder.
func (s *MailingService) EventReminder(ctx context.Context, caller *models.User, req dto.EventMailingRequest) (int, error) {
	return s.eventMailing(ctx, caller, req, func(event *models.Event, r *models.User) error {
		return s.mailer.SendEventReminder(r.Email, r.FIO, event.Title, event.StartTime)
	})
}

func (s *MailingService) eventMailing(ctx context.Context, caller *models.User, req dto.EventMailingRequest, send func(*models.Event, *models.User) error) (int, error) {
	if !auth.CanReviewApplications(caller) {
		return 0, apperrors.NewForbiddenError("only curators can send event mailings")
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return 0, err
	}

	subject := req.Subject
	if subject == "" {
		subject = event.Title
	}

	recipients, err := s.users.ListByRole(ctx, models.RoleCandidate)
	if err != nil {
		return 0, err
	}

	sent := 0
	failed := 0
	for _, recipient := range recipients {
		r := recipient
		err := s.sendRecorded(ctx, caller.ID, r.ID, subject, event.Title, func() error {
			return send(event, r)
		})
		if err != nil {
			failed++
			continue
		}
		sent++
	}

	if failed > 0 {
		return sent, &apperrors.CustomError{
			Err:     apperrors.ErrMailDelivery,
			Message: "some event mailings failed to deliver",
			Details: map[string]interface{}{"sent": sent, "failed": failed},
		}
	}

	return sent, nil
}

// IssueCredentials creates an account with a generated password and mails
// the credentials to its owner. Curators and HR issue accounts; this is
// the one path that can mint curator and intern roles, and curator
// accounts can only be minted by another curator.
func (s *MailingService) IssueCredentials(ctx context.Context, caller *models.User, req dto.CredentialsRequest) (*models.User, error) {
	if !auth.CanIssueCredentials(caller) {
		return nil, apperrors.NewForbiddenError("only curators and hr can issue credentials")
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}
	if role == models.RoleCurator && caller.Role != models.RoleCurator {
		return nil, apperrors.NewForbiddenError("only curators can issue curator accounts")
	}

	birthday, err := time.Parse(dto.DateFormat, req.Birthday)
	if err != nil {
		return nil, apperrors.NewValidationError("birthday must be formatted as YYYY-MM-DD")
	}

	password := uuid.New().String()
	hashed, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		Email:        req.Email,
		Password:     hashed,
		FIO:          req.FIO,
		Birthday:     birthday,
		Role:         role,
		PolicyAgreed: false,
		FirstAccess:  now,
		LastAccess:   now,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	err = s.sendRecorded(ctx, caller.ID, user.ID, "Your account credentials", "", func() error {
		return s.mailer.SendCredentials(user.Email, user.FIO, password)
	})
	if err != nil {
		// The account exists either way; the caller learns delivery failed.
		return user, err
	}

	return user, nil
}

// History lists the mailings delivered to the calling user.
func (s *MailingService) History(ctx context.Context, caller *models.User) ([]*models.Mailing, error) {
	return s.mailings.ListByTarget(ctx, caller.ID)
}
