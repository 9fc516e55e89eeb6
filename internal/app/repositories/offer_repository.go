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

// OfferRepository handles read access to mentor vacancy offers. Offer
// writes go through VacancyRepository because they change vacancy state.
type OfferRepository struct {
	db *pgxpool.Pool
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{
		db: db,
	}
}

// GetByVacancyID retrieves the offer bound to a vacancy
func (r *OfferRepository) GetByVacancyID(ctx context.Context, vacancyID int64) (*models.MentorVacancyOffer, error) {
	var offer models.MentorVacancyOffer
	err := r.db.QueryRow(ctx, `
		SELECT vacancy_id, mentor_id, mentor_status, created_at
		FROM mentor_vacancy_offers
		WHERE vacancy_id = $1
	`, vacancyID).Scan(
		&offer.VacancyID,
		&offer.MentorID,
		&offer.MentorStatus,
		&offer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("error retrieving offer: %w", err)
	}

	return &offer, nil
}

// ListByMentor retrieves all offers addressed to a mentor, newest first
func (r *OfferRepository) ListByMentor(ctx context.Context, mentorID int64) ([]*models.MentorVacancyOffer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT vacancy_id, mentor_id, mentor_status, created_at
		FROM mentor_vacancy_offers
		WHERE mentor_id = $1
		ORDER BY created_at DESC
	`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*models.MentorVacancyOffer
	for rows.Next() {
		var offer models.MentorVacancyOffer
		if err := rows.Scan(
			&offer.VacancyID,
			&offer.MentorID,
			&offer.MentorStatus,
			&offer.CreatedAt,
		); err != nil {
			return nil, err
		}
		offers = append(offers, &offer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
