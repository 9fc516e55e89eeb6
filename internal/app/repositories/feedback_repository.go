package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

// FeedbackRepository handles database operations for feedback
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
	}
}

// Create inserts a feedback row and fills in the generated id
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback (sender_id, target_id, text)
		VALUES ($1, $2, $3)
		RETURNING id
	`, feedback.SenderID, feedback.TargetID, feedback.Text).Scan(&feedback.ID)
	if err != nil {
		return fmt.Errorf("error creating feedback: %w", err)
	}

	return nil
}

// ListByTarget retrieves all feedback left about a user
func (r *FeedbackRepository) ListByTarget(ctx context.Context, targetID int64) ([]*models.Feedback, error) {
	return r.list(ctx, `
		SELECT id, sender_id, target_id, text
		FROM feedback
		WHERE target_id = $1
		ORDER BY id DESC
	`, targetID)
}

// ListBySender retrieves all feedback a user has left
func (r *FeedbackRepository) ListBySender(ctx context.Context, senderID int64) ([]*models.Feedback, error) {
	return r.list(ctx, `
		SELECT id, sender_id, target_id, text
		FROM feedback
		WHERE sender_id = $1
		ORDER BY id DESC
	`, senderID)
}

func (r *FeedbackRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Feedback, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		var feedback models.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.SenderID,
			&feedback.TargetID,
			&feedback.Text,
		); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, &feedback)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// Delete removes feedback owned by the sender
func (r *FeedbackRepository) Delete(ctx context.Context, id, senderID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM feedback WHERE id = $1 AND sender_id = $2`, id, senderID)
	if err != nil {
		return fmt.Errorf("error deleting feedback: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}
