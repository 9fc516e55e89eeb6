package services

import (
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/country"
)

// Eligibility bounds for the automatic application screening. Ages are
// compared by calendar year only.
const (
	minApplicantAge      = 18
	maxApplicantAge      = 35
	maxYearsToGraduation = 1
)

// ScreenApplication decides the initial status of an intern application.
// An applicant is verified when they are a Russian citizen, aged 18 to 35
// by year arithmetic, and graduate no more than a year after now.
// The function is pure: it never errors and touches no storage.
func ScreenApplication(app *models.InternApplication, birthday time.Time, now time.Time) models.ApplicationStatus {
	if app.Citizenship != country.Russia {
		return models.ApplicationUnverified
	}

	age := now.Year() - birthday.Year()
	if age < minApplicantAge || age > maxApplicantAge {
		return models.ApplicationUnverified
	}

	if app.GraduationDate.Year()-now.Year() > maxYearsToGraduation {
		return models.ApplicationUnverified
	}

	return models.ApplicationVerified
}
