package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

// EventRepository handles database operations for events and scores
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := r.db.QueryRow(ctx, `
		SELECT id, title, start_time, max_score
		FROM events
		WHERE id = $1
	`, id).Scan(&event.ID, &event.Title, &event.StartTime, &event.MaxScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return &event, nil
}

// List retrieves all events in chronological order
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, start_time, max_score
		FROM events
		ORDER BY start_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Title, &event.StartTime, &event.MaxScore); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// SetScore upserts a user's score for an event
func (r *EventRepository) SetScore(ctx context.Context, userID, eventID int64, score int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO event_scores (user_id, event_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, event_id) DO UPDATE SET score = EXCLUDED.score
	`, userID, eventID, score)
	if err != nil {
		return fmt.Errorf("error setting event score: %w", err)
	}
	return nil
}

// CandidateActivity aggregates each candidate's total score over all
// events, highest scorers first.
func (r *EventRepository) CandidateActivity(ctx context.Context, offset uint64, limit int) ([]*models.CandidateActivity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.fio,
			COALESCE(SUM(s.score), 0) AS score,
			COALESCE((SELECT SUM(max_score) FROM events), 0) AS max_score
		FROM users u
		LEFT JOIN event_scores s ON s.user_id = u.id
		WHERE u.role = $1 AND u.active
		GROUP BY u.id, u.fio
		ORDER BY score DESC, u.id
		LIMIT $2 OFFSET $3
	`, models.RoleCandidate, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.CandidateActivity
	for rows.Next() {
		var a models.CandidateActivity
		if err := rows.Scan(&a.UserID, &a.FIO, &a.Score, &a.MaxScore); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

// CountCandidates returns the number of active candidates
func (r *EventRepository) CountCandidates(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND active`, models.RoleCandidate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting candidates: %w", err)
	}
	return count, nil
}

// CandidateEventScores retrieves the per-event score breakdown for one user
func (r *EventRepository) CandidateEventScores(ctx context.Context, userID int64) ([]*models.CandidateEventScore, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.title, COALESCE(s.score, 0), e.max_score
		FROM events e
		LEFT JOIN event_scores s ON s.event_id = e.id AND s.user_id = $1
		ORDER BY e.start_time
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*models.CandidateEventScore
	for rows.Next() {
		var s models.CandidateEventScore
		if err := rows.Scan(&s.EventID, &s.EventTitle, &s.Score, &s.MaxScore); err != nil {
			return nil, err
		}
		scores = append(scores, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
