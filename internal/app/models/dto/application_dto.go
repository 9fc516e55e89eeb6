package dto

import (
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// ApplicationCreateRequest is the payload a candidate submits. Citizenship
// is a localized country name; it is normalized to alpha-2 before the
// application is screened.
type ApplicationCreateRequest struct {
	Course         string `json:"course" binding:"required" example:"3"`
	Education      string `json:"education" binding:"required" example:"Welding institute"`
	Resume         string `json:"resume" binding:"required"`
	Citizenship    string `json:"citizenship" binding:"required" example:"Russian Federation"`
	GraduationDate string `json:"graduationDate" binding:"required" example:"2025-06-30"`
	City           string `json:"city" binding:"required" example:"Moscow"`
}

// ApplicationResponse is the public intern application representation.
type ApplicationResponse struct {
	ID             int64  `json:"id" example:"1"`
	Course         string `json:"course"`
	Education      string `json:"education"`
	Resume         string `json:"resume"`
	Citizenship    string `json:"citizenship" example:"RU"`
	GraduationDate string `json:"graduationDate" example:"2025-06-30"`
	City           string `json:"city"`
	Status         string `json:"status" example:"verified"`
}

// FromApplication converts a models.InternApplication to a response DTO.
func FromApplication(a *models.InternApplication) ApplicationResponse {
	if a == nil {
		return ApplicationResponse{}
	}
	return ApplicationResponse{
		ID:             a.ID,
		Course:         a.Course,
		Education:      a.Education,
		Resume:         a.Resume,
		Citizenship:    a.Citizenship,
		GraduationDate: a.GraduationDate.Format(DateFormat),
		City:           a.City,
		Status:         string(a.Status),
	}
}

// FromApplications converts a slice of applications.
func FromApplications(apps []*models.InternApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, FromApplication(a))
	}
	return out
}

// ApplicationStatsResponse holds per-status application counts for curators.
type ApplicationStatsResponse struct {
	Unverified int64 `json:"unverified"`
	Verified   int64 `json:"verified"`
	Approved   int64 `json:"approved"`
	Declined   int64 `json:"declined"`
	Total      int64 `json:"total"`
}
