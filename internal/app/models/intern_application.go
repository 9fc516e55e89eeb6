package models

import (
	"time"
)

// InternApplication is one-to-one with a user: the primary key is the
// applicant's user id. Created with an automatically screened status;
// approved/declined later by a curator.
type InternApplication struct {
	ID             int64             `json:"id" db:"id"`
	Course         string            `json:"course" db:"course"`
	Education      string            `json:"education" db:"education"`
	Resume         string            `json:"resume" db:"resume"`
	Citizenship    string            `json:"citizenship" db:"citizenship"` // ISO 3166-1 alpha-2
	GraduationDate time.Time         `json:"graduationDate" db:"graduation_date"`
	City           string            `json:"city" db:"city"`
	Status         ApplicationStatus `json:"status" db:"status"`
}

// Event is an educational-track event candidates are scored on.
type Event struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	StartTime time.Time `json:"startTime" db:"start_time"`
	MaxScore  int       `json:"maxScore" db:"max_score"`
}

// EventScore is one user's score for one event.
type EventScore struct {
	ID      int64 `json:"id" db:"id"`
	UserID  int64 `json:"userId" db:"user_id"`
	EventID int64 `json:"eventId" db:"event_id"`
	Score   int   `json:"score" db:"score"`
}

// CandidateActivity aggregates a candidate's scores across all events.
type CandidateActivity struct {
	UserID   int64  `json:"id" db:"user_id"`
	FIO      string `json:"fio" db:"fio"`
	Score    int64  `json:"score" db:"score"`
	MaxScore int64  `json:"maxScore" db:"max_score"`
}

// CandidateEventScore is one scored event in a per-candidate breakdown.
type CandidateEventScore struct {
	EventID    int64  `json:"eventId" db:"event_id"`
	EventTitle string `json:"eventTitle" db:"event_title"`
	Score      int    `json:"score" db:"score"`
	MaxScore   int    `json:"maxScore" db:"max_score"`
}
