package dto

import (
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// VacancyCreateRequest is the payload HR sends to create a vacancy.
type VacancyCreateRequest struct {
	Title        string                     `json:"title" binding:"required" example:"Backend intern"`
	Description  string                     `json:"description" binding:"required"`
	StartDate    time.Time                  `json:"startDate" binding:"required"`
	EndDate      time.Time                  `json:"endDate" binding:"required"`
	Test         string                     `json:"test,omitempty"`
	Requirements models.VacancyRequirements `json:"requirements"`
	Organisation string                     `json:"organisation" binding:"required"`
	Coordinates  string                     `json:"coordinates,omitempty" example:"55.7558,37.6173"`
	Address      string                     `json:"address" binding:"required" example:"Moscow,Tverskaya,7"`
	Tags         []string                   `json:"tags,omitempty"`
}

// ProposeMentorRequest names the mentor HR offers the vacancy to.
type ProposeMentorRequest struct {
	MentorID int64 `json:"mentorId" binding:"required,min=1" example:"42"`
}

// VacancyListQuery carries the optional listing filters.
type VacancyListQuery struct {
	Tags          []string `form:"tag"`
	Organisations []string `form:"organisation"`
	City          string   `form:"city"`
}

// VacancyResponse is the public vacancy representation.
type VacancyResponse struct {
	ID           int64                      `json:"id" example:"1"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	HRID         int64                      `json:"hrId"`
	MentorID     *int64                     `json:"mentorId,omitempty"`
	StartDate    time.Time                  `json:"startDate"`
	EndDate      time.Time                  `json:"endDate"`
	Test         string                     `json:"test,omitempty"`
	Requirements models.VacancyRequirements `json:"requirements"`
	Organisation string                     `json:"organisation"`
	Coordinates  string                     `json:"coordinates,omitempty"`
	Address      string                     `json:"address"`
	Status       string                     `json:"status" example:"published"`
	Tags         []string                   `json:"tags"`
}

// FromVacancy converts a models.Vacancy to a VacancyResponse.
func FromVacancy(v *models.Vacancy) VacancyResponse {
	if v == nil {
		return VacancyResponse{}
	}
	tags := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		tags = append(tags, t.Name)
	}
	return VacancyResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		HRID:         v.HRID,
		MentorID:     v.MentorID,
		StartDate:    v.StartDate,
		EndDate:      v.EndDate,
		Test:         v.Test,
		Requirements: v.Requirements,
		Organisation: v.Organisation,
		Coordinates:  v.Coordinates,
		Address:      v.Address,
		Status:       string(v.Status),
		Tags:         tags,
	}
}

// FromVacancies converts a slice of vacancies.
func FromVacancies(vacancies []*models.Vacancy) []VacancyResponse {
	out := make([]VacancyResponse, 0, len(vacancies))
	for _, v := range vacancies {
		out = append(out, FromVacancy(v))
	}
	return out
}

// OfferResponse is the mentor-facing view of an outstanding offer.
type OfferResponse struct {
	VacancyID    int64     `json:"vacancyId"`
	MentorID     int64     `json:"mentorId"`
	MentorStatus string    `json:"mentorStatus" example:"pending"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromOffer converts a models.MentorVacancyOffer to an OfferResponse.
func FromOffer(o *models.MentorVacancyOffer) OfferResponse {
	if o == nil {
		return OfferResponse{}
	}
	return OfferResponse{
		VacancyID:    o.VacancyID,
		MentorID:     o.MentorID,
		MentorStatus: string(o.MentorStatus),
		CreatedAt:    o.CreatedAt,
	}
}
