package auth

import (
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// visibleStatuses maps a caller role to the vacancy statuses its listing
// queries may include. Every authorization decision about vacancy
// visibility dispatches through this table; handlers never compare role
// strings themselves. Interns are candidate-equivalent: the upstream
// system never mapped them, so they see published vacancies only.
var visibleStatuses = map[models.Role][]models.VacancyStatus{
	models.RoleCandidate: {models.VacancyPublished},
	models.RoleIntern:    {models.VacancyPublished},
	models.RoleMentor:    {models.VacancyAccepted, models.VacancyPublished},
	models.RoleHR: {
		models.VacancyAccepted,
		models.VacancyPublished,
		models.VacancyPending,
		models.VacancyHidden,
	},
	models.RoleCurator: {
		models.VacancyAccepted,
		models.VacancyPublished,
		models.VacancyPending,
		models.VacancyHidden,
		models.VacancyClosed,
	},
}

// VisibleStatuses returns the set of vacancy statuses the role may see.
// Unknown roles see nothing.
func VisibleStatuses(role models.Role) []models.VacancyStatus {
	statuses, ok := visibleStatuses[role]
	if !ok {
		return nil
	}
	out := make([]models.VacancyStatus, len(statuses))
	copy(out, statuses)
	return out
}

// CanSeeVacancy reports whether the user may view the vacancy. The owning
// HR always sees their own vacancies regardless of status.
func CanSeeVacancy(user *models.User, vacancy *models.Vacancy) bool {
	if user == nil || vacancy == nil {
		return false
	}
	if user.Role == models.RoleHR && vacancy.HRID == user.ID {
		return true
	}
	if user.Role == models.RoleMentor && vacancy.MentorID != nil && *vacancy.MentorID == user.ID {
		return true
	}
	for _, s := range visibleStatuses[user.Role] {
		if s == vacancy.Status {
			return true
		}
	}
	return false
}

// CanCreateVacancy reports whether the user may post vacancies.
func CanCreateVacancy(user *models.User) bool {
	return user != nil && user.Role == models.RoleHR
}

// CanReviewApplications reports whether the user may approve, decline and
// list intern applications.
func CanReviewApplications(user *models.User) bool {
	return user != nil && user.Role == models.RoleCurator
}

// CanIssueCredentials reports whether the user may create accounts with
// generated passwords. Curators issue any role; HR issues accounts for
// their own hires through the same path.
func CanIssueCredentials(user *models.User) bool {
	return user != nil && (user.Role == models.RoleCurator || user.Role == models.RoleHR)
}
