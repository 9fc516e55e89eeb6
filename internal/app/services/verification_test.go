package services

import (
	"testing"
	"time"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestScreenApplication(t *testing.T) {
	now := date(2023, 6, 1)

	cases := []struct {
		name        string
		citizenship string
		birthday    time.Time
		graduation  time.Time
		want        models.ApplicationStatus
	}{
		{
			name:        "eligible applicant",
			citizenship: "RU",
			birthday:    date(2001, 3, 15),
			graduation:  date(2024, 6, 30),
			want:        models.ApplicationVerified,
		},
		{
			name:        "foreign citizenship",
			citizenship: "KZ",
			birthday:    date(2001, 3, 15),
			graduation:  date(2024, 6, 30),
			want:        models.ApplicationUnverified,
		},
		{
			name:        "too young",
			citizenship: "RU",
			birthday:    date(2008, 1, 1),
			graduation:  date(2024, 6, 30),
			want:        models.ApplicationUnverified,
		},
		{
			name:        "exactly eighteen by year",
			citizenship: "RU",
			birthday:    date(2005, 12, 31),
			graduation:  date(2024, 6, 30),
			want:        models.ApplicationVerified,
		},
		{
			name:        "exactly thirty five by year",
			citizenship: "RU",
			birthday:    date(1988, 1, 1),
			graduation:  date(2024, 6, 30),
			want:        models.ApplicationVerified,
		},
		{
			name:        "too old",
			citizenship: "RU",
			birthday:    date(1987, 12, 31),
			graduation:  date(2024, 6, 30),
			want:        models.ApplicationUnverified,
		},
		{
			name:        "graduates too far out",
			citizenship: "RU",
			birthday:    date(2001, 3, 15),
			graduation:  date(2025, 6, 30),
			want:        models.ApplicationUnverified,
		},
		{
			name:        "already graduated",
			citizenship: "RU",
			birthday:    date(1995, 3, 15),
			graduation:  date(2017, 6, 30),
			want:        models.ApplicationVerified,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := &models.InternApplication{
				Citizenship:    tc.citizenship,
				GraduationDate: tc.graduation,
			}
			got := ScreenApplication(app, tc.birthday, now)
			if got != tc.want {
				t.Errorf("ScreenApplication() = %s, want %s", got, tc.want)
			}
		})
	}
}
