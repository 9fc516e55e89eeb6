package auth

import (
	"testing"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

func containsStatus(statuses []models.VacancyStatus, want models.VacancyStatus) bool {
	for _, s := range statuses {
		if s == want {
			return true
		}
	}
	return false
}

func TestVisibleStatuses_Candidate(t *testing.T) {
	statuses := VisibleStatuses(models.RoleCandidate)

	if len(statuses) != 1 || statuses[0] != models.VacancyPublished {
		t.Errorf("candidate should see only published vacancies, got %v", statuses)
	}
}

func TestVisibleStatuses_InternMatchesCandidate(t *testing.T) {
	intern := VisibleStatuses(models.RoleIntern)
	candidate := VisibleStatuses(models.RoleCandidate)

	if len(intern) != len(candidate) {
		t.Fatalf("intern visibility %v differs from candidate %v", intern, candidate)
	}
	for i := range intern {
		if intern[i] != candidate[i] {
			t.Errorf("intern visibility %v differs from candidate %v", intern, candidate)
		}
	}
}

func TestVisibleStatuses_Mentor(t *testing.T) {
	statuses := VisibleStatuses(models.RoleMentor)

	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses for mentor, got %v", statuses)
	}
	for _, want := range []models.VacancyStatus{models.VacancyAccepted, models.VacancyPublished} {
		if !containsStatus(statuses, want) {
			t.Errorf("mentor should see %s vacancies", want)
		}
	}
}

func TestVisibleStatuses_HRExcludesClosed(t *testing.T) {
	statuses := VisibleStatuses(models.RoleHR)

	if len(statuses) != 4 {
		t.Fatalf("expected 4 statuses for hr, got %v", statuses)
	}
	if containsStatus(statuses, models.VacancyClosed) {
		t.Error("hr listings should not include closed vacancies")
	}
}

func TestVisibleStatuses_CuratorSeesAll(t *testing.T) {
	statuses := VisibleStatuses(models.RoleCurator)

	all := []models.VacancyStatus{
		models.VacancyHidden,
		models.VacancyPending,
		models.VacancyAccepted,
		models.VacancyPublished,
		models.VacancyClosed,
	}
	if len(statuses) != len(all) {
		t.Fatalf("expected %d statuses for curator, got %v", len(all), statuses)
	}
	for _, want := range all {
		if !containsStatus(statuses, want) {
			t.Errorf("curator should see %s vacancies", want)
		}
	}
}

func TestVisibleStatuses_UnknownRole(t *testing.T) {
	if statuses := VisibleStatuses(models.Role("janitor")); len(statuses) != 0 {
		t.Errorf("unknown role should see nothing, got %v", statuses)
	}
}

func TestCanSeeVacancy_OwnerSeesHidden(t *testing.T) {
	hr := &models.User{ID: 7, Role: models.RoleHR}
	vacancy := &models.Vacancy{ID: 1, HRID: 7, Status: models.VacancyHidden}

	if !CanSeeVacancy(hr, vacancy) {
		t.Error("owning hr should see their own hidden vacancy")
	}
}

func TestCanSeeVacancy_ForeignHRDeniedClosed(t *testing.T) {
	hr := &models.User{ID: 8, Role: models.RoleHR}
	vacancy := &models.Vacancy{ID: 1, HRID: 7, Status: models.VacancyClosed}

	if CanSeeVacancy(hr, vacancy) {
		t.Error("non-owning hr should not see a closed vacancy")
	}
}

func TestCanSeeVacancy_CandidateDeniedPending(t *testing.T) {
	candidate := &models.User{ID: 3, Role: models.RoleCandidate}
	vacancy := &models.Vacancy{ID: 1, HRID: 7, Status: models.VacancyPending}

	if CanSeeVacancy(candidate, vacancy) {
		t.Error("candidate should not see a pending vacancy")
	}
}

func TestCanSeeVacancy_BoundMentorSeesClosed(t *testing.T) {
	mentorID := int64(5)
	mentor := &models.User{ID: mentorID, Role: models.RoleMentor}
	vacancy := &models.Vacancy{ID: 1, HRID: 7, MentorID: &mentorID, Status: models.VacancyClosed}

	if !CanSeeVacancy(mentor, vacancy) {
		t.Error("the bound mentor should still see their closed vacancy")
	}
}

func TestCanIssueCredentials(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleCurator, true},
		{models.RoleHR, true},
		{models.RoleMentor, false},
		{models.RoleCandidate, false},
		{models.RoleIntern, false},
	}
	for _, tc := range cases {
		if got := CanIssueCredentials(&models.User{Role: tc.role}); got != tc.want {
			t.Errorf("CanIssueCredentials(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
	if CanIssueCredentials(nil) {
		t.Error("nil user should not issue credentials")
	}
}
