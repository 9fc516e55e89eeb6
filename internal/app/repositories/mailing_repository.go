package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
)

// MailingRepository records every templated email the platform sends
type MailingRepository struct {
	db *pgxpool.Pool
}

// NewMailingRepository creates a new mailing repository
func NewMailingRepository(db *pgxpool.Pool) *MailingRepository {
	return &MailingRepository{
		db: db,
	}
}

// Create inserts a mailing record and fills in the generated id
func (r *MailingRepository) Create(ctx context.Context, mailing *models.Mailing) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO mailings (sender_id, target_id, time_sent, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, mailing.SenderID, mailing.TargetID, mailing.TimeSent, mailing.Subject, mailing.Message).Scan(&mailing.ID)
	if err != nil {
		return fmt.Errorf("error recording mailing: %w", err)
	}

	return nil
}

// ListByTarget retrieves all mailings delivered to a user, newest first
func (r *MailingRepository) ListByTarget(ctx context.Context, targetID int64) ([]*models.Mailing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sender_id, target_id, time_sent, subject, message
		FROM mailings
		WHERE target_id = $1
		ORDER BY time_sent DESC
	`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mailings []*models.Mailing
	for rows.Next() {
		var mailing models.Mailing
		if err := rows.Scan(
			&mailing.ID,
			&mailing.SenderID,
			&mailing.TargetID,
			&mailing.TimeSent,
			&mailing.Subject,
			&mailing.Message,
		); err != nil {
			return nil, err
		}
		mailings = append(mailings, &mailing)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mailings, nil
}
