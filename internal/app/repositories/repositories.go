package repositories

import (
	"github.com/EgorTarasov/ldt-2023/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	VacancyRepository     *VacancyRepository
	OfferRepository       *OfferRepository
	ApplicationRepository *ApplicationRepository
	FeedbackRepository    *FeedbackRepository
	MailingRepository     *MailingRepository
	EventRepository       *EventRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(pg.Pool),
		VacancyRepository:     NewVacancyRepository(pg),
		OfferRepository:       NewOfferRepository(pg.Pool),
		ApplicationRepository: NewApplicationRepository(pg.Pool),
		FeedbackRepository:    NewFeedbackRepository(pg.Pool),
		MailingRepository:     NewMailingRepository(pg.Pool),
		EventRepository:       NewEventRepository(pg.Pool),
	}
}
