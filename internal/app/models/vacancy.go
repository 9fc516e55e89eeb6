package models

import (
	"time"
)

// VacancyRequirements is the structured requirements block stored as JSONB.
type VacancyRequirements struct {
	Specializations []string `json:"specializations"`
	Education       string   `json:"education,omitempty"`
	Citizenship     string   `json:"citizenship,omitempty"`
	Experience      string   `json:"experience,omitempty"`
}

// Vacancy defines the vacancy model based on the 'vacancies' table.
// HRID is the immutable owner; MentorID is set only when an offer is
// accepted and stays nil otherwise.
type Vacancy struct {
	ID           int64               `json:"id" db:"id"`
	Title        string              `json:"title" db:"title"`
	Description  string              `json:"description" db:"description"`
	HRID         int64               `json:"hrId" db:"hr_id"`
	MentorID     *int64              `json:"mentorId,omitempty" db:"mentor_id"`
	StartDate    time.Time           `json:"startDate" db:"start_date"`
	EndDate      time.Time           `json:"endDate" db:"end_date"`
	Test         string              `json:"test" db:"test"`
	Requirements VacancyRequirements `json:"requirements" db:"requirements"`
	Organisation string              `json:"organisation" db:"organisation"`
	Coordinates  string              `json:"coordinates" db:"coordinates"` // "lat,long"
	Address      string              `json:"address" db:"address"`         // "city,street,building"
	Status       VacancyStatus       `json:"status" db:"status"`
	Tags         []Tag               `json:"tags"` // relation, no db tag
}

// City returns the first comma-separated segment of the address.
func (v *Vacancy) City() string {
	for i := 0; i < len(v.Address); i++ {
		if v.Address[i] == ',' {
			return v.Address[:i]
		}
	}
	return v.Address
}

// Tag is a name-unique label attached to vacancies (m2m via vacancy_tags).
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// MentorVacancyOffer binds a candidate mentor to a vacancy. The vacancy id
// is the primary key, so a vacancy holds at most one outstanding offer.
type MentorVacancyOffer struct {
	VacancyID    int64       `json:"vacancyId" db:"vacancy_id"`
	MentorID     int64       `json:"mentorId" db:"mentor_id"`
	MentorStatus OfferStatus `json:"mentorStatus" db:"mentor_status"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

// VacancyFilters are the caller-supplied optional listing filters. They are
// OR-combined with each other and AND-combined with the role visibility set.
type VacancyFilters struct {
	Tags          []string
	Organisations []string
	City          string
}

// Empty reports whether no optional filter was supplied.
func (f VacancyFilters) Empty() bool {
	return len(f.Tags) == 0 && len(f.Organisations) == 0 && f.City == ""
}

// VacancyFiltersAvailable lists the most popular filter values.
type VacancyFiltersAvailable struct {
	Tags          []string `json:"tags"`
	Cities        []string `json:"city"`
	Organisations []string `json:"organisations"`
}
