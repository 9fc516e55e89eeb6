package services

import (
	"context"
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/auth"
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/filtercache"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/helpers"
)

// popularFilterLimit caps each filter dropdown at the top entries.
const popularFilterLimit = 10

// vacancyStore is the persistence surface VacancyService needs.
type vacancyStore interface {
	Create(ctx context.Context, vacancy *models.Vacancy, tagNames []string) error
	GetByID(ctx context.Context, id int64) (*models.Vacancy, error)
	List(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters, offset uint64, limit int) ([]*models.Vacancy, error)
	Count(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters) (int64, error)
	ProposeMentor(ctx context.Context, vacancyID, mentorID int64) error
	AcceptOffer(ctx context.Context, vacancyID, mentorID int64) error
	DeclineOffer(ctx context.Context, vacancyID, mentorID int64) error
	Publish(ctx context.Context, vacancyID, mentorID int64) error
	Close(ctx context.Context, vacancyID int64) error
	PopularTags(ctx context.Context, limit int) ([]string, error)
	PopularOrganisations(ctx context.Context, limit int) ([]string, error)
	PopularCities(ctx context.Context, limit int) ([]string, error)
}

// offerStore reads mentor offers.
type offerStore interface {
	GetByVacancyID(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error)
	ListByMentor(ctx context.Context, mentorID int64) ([]*models.MentorVacancyOffer, error)
}

// userReader looks up users for mentor validation.
type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// offerNotifier delivers the mentor-offer email. Implemented by
// MailingService so every notification leaves a mailing record.
type offerNotifier interface {
	NotifyMentorOffer(ctx context.Context, hrID int64, mentor *models.User, vacancyTitle string) error
}

// VacancyService implements the vacancy lifecycle: creation by HR, mentor
// proposal and acceptance, publication and closure.
type VacancyService struct {
	vacancies vacancyStore
	offers    offerStore
	users     userReader
	notifier  offerNotifier
	cache     *filtercache.Cache
}

// NewVacancyService creates a new vacancy service
func NewVacancyService(vacancies vacancyStore, offers offerStore, users userReader, notifier offerNotifier, cache *filtercache.Cache) *VacancyService {
	return &VacancyService{
		vacancies: vacancies,
		offers:    offers,
		users:     users,
		notifier:  notifier,
		cache:     cache,
	}
}

// CreateVacancy posts a new hidden vacancy owned by the calling HR.
func (s *VacancyService) CreateVacancy(ctx context.Context, caller *models.User, req dto.VacancyCreateRequest) (*models.Vacancy, error) {
	if !auth.CanCreateVacancy(caller) {
		return nil, apperrors.NewForbiddenError("only hr managers can post vacancies")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewValidationError("end date must be after start date")
	}

	vacancy := &models.Vacancy{
		Title:        req.Title,
		Description:  req.Description,
		HRID:         caller.ID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Test:         req.Test,
		Requirements: req.Requirements,
		Organisation: req.Organisation,
		Coordinates:  req.Coordinates,
		Address:      req.Address,
		Status:       models.VacancyHidden,
	}

	if err := s.vacancies.Create(ctx, vacancy, req.Tags); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return vacancy, nil
}

// GetVacancy returns one vacancy if the caller is allowed to see it.
// Vacancies invisible to the caller read as not found.
func (s *VacancyService) GetVacancy(ctx context.Context, caller *models.User, id int64) (*models.Vacancy, error) {
	vacancy, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanSeeVacancy(caller, vacancy) {
		return nil, apperrors.ErrVacancyNotFound
	}

	return vacancy, nil
}

// ListVacancies returns the page of vacancies visible to the caller's role
// that match the optional filters.
func (s *VacancyService) ListVacancies(ctx context.Context, caller *models.User, filters models.VacancyFilters, page, size int) ([]*models.Vacancy, dto.PaginationInfo, error) {
	statuses := auth.VisibleStatuses(caller.Role)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	vacancies, err := s.vacancies.List(ctx, statuses, filters, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.vacancies.Count(ctx, statuses, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return vacancies, helpers.NewPaginationInfo(total, page, size), nil
}

// AvailableFilters returns the most popular tags, cities and organisations
// for the listing filter dropdowns. Served from cache when warm.
func (s *VacancyService) AvailableFilters(ctx context.Context) (*models.VacancyFiltersAvailable, error) {
	load := func(key string, loader func(context.Context, int) ([]string, error)) ([]string, error) {
		if s.cache == nil {
			return loader(ctx, popularFilterLimit)
		}
		val, err := s.cache.GetOrSet(key, 5*time.Minute, func() (any, error) {
			return loader(ctx, popularFilterLimit)
		})
		if err != nil {
			return nil, err
		}
		return val.([]string), nil
	}

	tags, err := load(filtercache.KeyPopularTags, s.vacancies.PopularTags)
	if err != nil {
		return nil, err
	}
	cities, err := load(filtercache.KeyPopularCities, s.vacancies.PopularCities)
	if err != nil {
		return nil, err
	}
	organisations, err := load(filtercache.KeyPopularOrganisations, s.vacancies.PopularOrganisations)
	if err != nil {
		return nil, err
	}

	return &models.VacancyFiltersAvailable{
		Tags:          tags,
		Cities:        cities,
		Organisations: organisations,
	}, nil
}

// ProposeMentor offers a hidden vacancy to a mentor. Only the owning HR
// may propose; the vacancy moves to pending and the mentor is notified.
func (s *VacancyService) ProposeMentor(ctx context.Context, caller *models.User, vacancyID, mentorID int64) (*models.MentorVacancyOffer, error) {
	vacancy, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleHR || vacancy.HRID != caller.ID {
		return nil, apperrors.NewForbiddenError("only the owning hr can propose a mentor")
	}
	if vacancy.Status != models.VacancyHidden {
		return nil, apperrors.NewConflictError("vacancy already has an outstanding or accepted offer")
	}

	mentor, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.Role != models.RoleMentor {
		// A non-mentor target reads the same as a missing one.
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.vacancies.ProposeMentor(ctx, vacancyID, mentorID); err != nil {
		return nil, err
	}

	offer, err := s.offers.GetByVacancyID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}

	// The proposal is committed at this point; a failed notification
	// surfaces as a delivery error without rolling it back.
	if s.notifier != nil {
		if err := s.notifier.NotifyMentorOffer(ctx, caller.ID, mentor, vacancy.Title); err != nil {
			return offer, err
		}
	}

	return offer, nil
}

// AcceptOffer lets the offered mentor take the vacancy. A mentor already
// bound to an accepted or published vacancy gets a conflict.
func (s *VacancyService) AcceptOffer(ctx context.Context, caller *models.User, vacancyID int64) error {
	if caller.Role != models.RoleMentor {
		return apperrors.NewForbiddenError("only mentors can accept offers")
	}
	return s.vacancies.AcceptOffer(ctx, vacancyID, caller.ID)
}

// DeclineOffer lets the offered mentor turn the vacancy down. The vacancy
// returns to hidden so the HR can propose someone else.
func (s *VacancyService) DeclineOffer(ctx context.Context, caller *models.User, vacancyID int64) error {
	if caller.Role != models.RoleMentor {
		return apperrors.NewForbiddenError("only mentors can decline offers")
	}
	return s.vacancies.DeclineOffer(ctx, vacancyID, caller.ID)
}

// PublishVacancy makes an accepted vacancy visible to candidates. Only the
// mentor who accepted it may publish.
func (s *VacancyService) PublishVacancy(ctx context.Context, caller *models.User, vacancyID int64) error {
	vacancy, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleMentor || vacancy.MentorID == nil || *vacancy.MentorID != caller.ID {
		return apperrors.NewForbiddenError("only the accepting mentor can publish the vacancy")
	}
	if vacancy.Status != models.VacancyAccepted {
		return apperrors.NewConflictError("vacancy is not in the accepted state")
	}

	if err := s.vacancies.Publish(ctx, vacancyID, caller.ID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return nil
}

// DeleteVacancy closes a vacancy. Only the owning HR may delete; offers
// are removed and the vacancy is kept as a closed record.
func (s *VacancyService) DeleteVacancy(ctx context.Context, caller *models.User, vacancyID int64) error {
	vacancy, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleHR || vacancy.HRID != caller.ID {
		return apperrors.NewForbiddenError("only the owning hr can delete the vacancy")
	}
	if vacancy.Status == models.VacancyClosed {
		return apperrors.NewConflictError("vacancy is already closed")
	}

	if err := s.vacancies.Close(ctx, vacancyID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return nil
}

// MyOffers lists all offers addressed to the calling mentor.
func (s *VacancyService) MyOffers(ctx context.Context, caller *models.User) ([]*models.MentorVacancyOffer, error) {
	if caller.Role != models.RoleMentor {
		return nil, apperrors.NewForbiddenError("only mentors have offers")
	}
	return s.offers.ListByMentor(ctx, caller.ID)
}
