package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/db"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

// VacancyRepository handles database operations for vacancies, their tags
// and mentor offers. State transitions that touch more than one row run
// inside a single transaction.
type VacancyRepository struct {
	pg *db.PostgresDB
}

// NewVacancyRepository creates a new vacancy repository
func NewVacancyRepository(pg *db.PostgresDB) *VacancyRepository {
	return &VacancyRepository{
		pg: pg,
	}
}

const vacancyColumns = `v.id, v.title, v.description, v.hr_id, v.mentor_id, v.start_date,
		v.end_date, v.test, v.requirements, v.organisation, v.coordinates, v.address, v.status`

func scanVacancy(row pgx.Row) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := row.Scan(
		&vacancy.ID,
		&vacancy.Title,
		&vacancy.Description,
		&vacancy.HRID,
		&vacancy.MentorID,
		&vacancy.StartDate,
		&vacancy.EndDate,
		&vacancy.Test,
		&vacancy.Requirements,
		&vacancy.Organisation,
		&vacancy.Coordinates,
		&vacancy.Address,
		&vacancy.Status,
	)
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}

// Create inserts a vacancy with its tags. Tags are upserted by name so
// posting a vacancy never fails on an existing tag.
func (r *VacancyRepository) Create(ctx context.Context, vacancy *models.Vacancy, tagNames []string) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO vacancies (title, description, hr_id, start_date, end_date, test,
				requirements, organisation, coordinates, address, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query,
			vacancy.Title,
			vacancy.Description,
			vacancy.HRID,
			vacancy.StartDate,
			vacancy.EndDate,
			vacancy.Test,
			vacancy.Requirements,
			vacancy.Organisation,
			vacancy.Coordinates,
			vacancy.Address,
			vacancy.Status,
		).Scan(&vacancy.ID)
		if err != nil {
			return fmt.Errorf("error creating vacancy: %w", err)
		}

		vacancy.Tags = vacancy.Tags[:0]
		for _, name := range tagNames {
			var tag models.Tag
			err := tx.QueryRow(ctx, `
				INSERT INTO tags (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id, name
			`, name).Scan(&tag.ID, &tag.Name)
			if err != nil {
				return fmt.Errorf("error upserting tag: %w", err)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO vacancy_tags (vacancy_id, tag_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, vacancy.ID, tag.ID)
			if err != nil {
				return fmt.Errorf("error linking tag: %w", err)
			}

			vacancy.Tags = append(vacancy.Tags, tag)
		}

		return nil
	})
}

// GetByID retrieves a vacancy with its tags
func (r *VacancyRepository) GetByID(ctx context.Context, id int64) (*models.Vacancy, error) {
	query := fmt.Sprintf(`SELECT %s FROM vacancies v WHERE v.id = $1`, vacancyColumns)

	vacancy, err := scanVacancy(r.pg.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("error retrieving vacancy: %w", err)
	}

	if err := r.loadTags(ctx, []*models.Vacancy{vacancy}); err != nil {
		return nil, err
	}

	return vacancy, nil
}

// listConditions builds the WHERE clause shared by List and Count.
// Statuses are always ANDed in; the optional filters are ORed together.
func listConditions(statuses []models.VacancyStatus, filters models.VacancyFilters) (string, []interface{}) {
	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	args := []interface{}{statusStrings}
	conditions := []string{"v.status = ANY($1)"}

	if !filters.Empty() {
		var orParts []string
		if len(filters.Tags) > 0 {
			args = append(args, filters.Tags)
			orParts = append(orParts, fmt.Sprintf("t.name = ANY($%d)", len(args)))
		}
		if len(filters.Organisations) > 0 {
			args = append(args, filters.Organisations)
			orParts = append(orParts, fmt.Sprintf("v.organisation = ANY($%d)", len(args)))
		}
		if filters.City != "" {
			args = append(args, "%"+filters.City+"%")
			orParts = append(orParts, fmt.Sprintf("split_part(v.address, ',', 1) ILIKE $%d", len(args)))
		}
		conditions = append(conditions, "("+strings.Join(orParts, " OR ")+")")
	}

	return strings.Join(conditions, " AND "), args
}

// List retrieves vacancies limited to the given statuses and matching the
// optional filters, newest first.
func (r *VacancyRepository) List(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters, offset uint64, limit int) ([]*models.Vacancy, error) {
	if len(statuses) == 0 {
		return []*models.Vacancy{}, nil
	}

	where, args := listConditions(statuses, filters)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM vacancies v
		LEFT JOIN vacancy_tags vt ON vt.vacancy_id = v.id
		LEFT JOIN tags t ON t.id = vt.tag_id
		WHERE %s
		ORDER BY v.id DESC
		LIMIT $%d OFFSET $%d
	`, vacancyColumns, where, len(args)-1, len(args))

	rows, err := r.pg.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []*models.Vacancy
	for rows.Next() {
		vacancy, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		vacancies = append(vacancies, vacancy)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, vacancies); err != nil {
		return nil, err
	}

	return vacancies, nil
}

// Count returns the number of vacancies matching List's conditions
func (r *VacancyRepository) Count(ctx context.Context, statuses []models.VacancyStatus, filters models.VacancyFilters) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	where, args := listConditions(statuses, filters)
	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT v.id)
		FROM vacancies v
		LEFT JOIN vacancy_tags vt ON vt.vacancy_id = v.id
		LEFT JOIN tags t ON t.id = vt.tag_id
		WHERE %s
	`, where)

	var count int64
	if err := r.pg.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting vacancies: %w", err)
	}

	return count, nil
}

// loadTags attaches tags to the given vacancies in one query
func (r *VacancyRepository) loadTags(ctx context.Context, vacancies []*models.Vacancy) error {
	if len(vacancies) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(vacancies))
	byID := make(map[int64]*models.Vacancy, len(vacancies))
	for _, v := range vacancies {
		ids = append(ids, v.ID)
		byID[v.ID] = v
		if v.Tags == nil {
			v.Tags = []models.Tag{}
		}
	}

	rows, err := r.pg.Pool.Query(ctx, `
		SELECT vt.vacancy_id, t.id, t.name
		FROM vacancy_tags vt
		JOIN tags t ON t.id = vt.tag_id
		WHERE vt.vacancy_id = ANY($1)
		ORDER BY t.name
	`, ids)
	if err != nil {
		return fmt.Errorf("error loading tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vacancyID int64
		var tag models.Tag
		if err := rows.Scan(&vacancyID, &tag.ID, &tag.Name); err != nil {
			return err
		}
		if v, ok := byID[vacancyID]; ok {
			v.Tags = append(v.Tags, tag)
		}
	}

	return rows.Err()
}

// ProposeMentor moves a hidden vacancy to pending and creates the offer.
// The offer table's primary key is the vacancy id; a declined leftover
// from an earlier proposal is replaced, while a live offer conflicts.
func (r *VacancyRepository) ProposeMentor(ctx context.Context, vacancyID, mentorID int64) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE vacancies SET status = $1 WHERE id = $2 AND status = $3
		`, models.VacancyPending, vacancyID, models.VacancyHidden)
		if err != nil {
			return fmt.Errorf("error moving vacancy to pending: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrConflict
		}

		cmdTag, err = tx.Exec(ctx, `
			INSERT INTO mentor_vacancy_offers (vacancy_id, mentor_id, mentor_status)
			VALUES ($1, $2, $3)
			ON CONFLICT (vacancy_id) DO UPDATE
			SET mentor_id = EXCLUDED.mentor_id, mentor_status = EXCLUDED.mentor_status
			WHERE mentor_vacancy_offers.mentor_status = $4
		`, vacancyID, mentorID, models.OfferPending, models.OfferDeclined)
		if err != nil {
			return fmt.Errorf("error creating offer: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrOfferAlreadyExists
		}

		return nil
	})
}

// AcceptOffer binds the mentor to the vacancy and activates the offer.
// Everything happens in one transaction with the mentor's user row and the
// vacancy row locked, so two concurrent accepts by the same mentor cannot
// both pass the single-vacancy check. Lock order is users before vacancies.
func (r *VacancyRepository) AcceptOffer(ctx context.Context, vacancyID, mentorID int64) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`, mentorID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error locking mentor row: %w", err)
		}

		var status models.VacancyStatus
		err = tx.QueryRow(ctx,
			`SELECT status FROM vacancies WHERE id = $1 FOR UPDATE`, vacancyID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrVacancyNotFound
			}
			return fmt.Errorf("error locking vacancy row: %w", err)
		}
		if status != models.VacancyPending {
			return apperrors.ErrConflict
		}

		var offerMentorID int64
		var offerStatus models.OfferStatus
		err = tx.QueryRow(ctx, `
			SELECT mentor_id, mentor_status FROM mentor_vacancy_offers WHERE vacancy_id = $1
		`, vacancyID).Scan(&offerMentorID, &offerStatus)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrOfferNotFound
			}
			return fmt.Errorf("error retrieving offer: %w", err)
		}
		if offerMentorID != mentorID {
			return apperrors.ErrPermissionDenied
		}
		if offerStatus != models.OfferPending {
			return apperrors.ErrConflict
		}

		var busy bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM vacancies
				WHERE mentor_id = $1 AND status = ANY($2)
			)
		`, mentorID, []string{string(models.VacancyAccepted), string(models.VacancyPublished)}).Scan(&busy)
		if err != nil {
			return fmt.Errorf("error checking mentor load: %w", err)
		}
		if busy {
			return apperrors.ErrMentorBusy
		}

		_, err = tx.Exec(ctx, `
			UPDATE vacancies SET mentor_id = $1, status = $2 WHERE id = $3
		`, mentorID, models.VacancyAccepted, vacancyID)
		if err != nil {
			return fmt.Errorf("error accepting vacancy: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE mentor_vacancy_offers SET mentor_status = $1 WHERE vacancy_id = $2
		`, models.OfferActive, vacancyID)
		if err != nil {
			return fmt.Errorf("error activating offer: %w", err)
		}

		return nil
	})
}

// DeclineOffer marks the offer declined and returns the vacancy to hidden
// so the HR can propose another mentor.
func (r *VacancyRepository) DeclineOffer(ctx context.Context, vacancyID, mentorID int64) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var offerMentorID int64
		var offerStatus models.OfferStatus
		err := tx.QueryRow(ctx, `
			SELECT mentor_id, mentor_status FROM mentor_vacancy_offers
			WHERE vacancy_id = $1 FOR UPDATE
		`, vacancyID).Scan(&offerMentorID, &offerStatus)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrOfferNotFound
			}
			return fmt.Errorf("error retrieving offer: %w", err)
		}
		if offerMentorID != mentorID {
			return apperrors.ErrPermissionDenied
		}
		if offerStatus != models.OfferPending {
			return apperrors.ErrConflict
		}

		_, err = tx.Exec(ctx, `
			UPDATE mentor_vacancy_offers SET mentor_status = $1 WHERE vacancy_id = $2
		`, models.OfferDeclined, vacancyID)
		if err != nil {
			return fmt.Errorf("error declining offer: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE vacancies SET status = $1 WHERE id = $2
		`, models.VacancyHidden, vacancyID)
		if err != nil {
			return fmt.Errorf("error returning vacancy to hidden: %w", err)
		}

		return nil
	})
}

// Publish moves an accepted vacancy to published. Only the mentor bound to
// the vacancy may publish it; the guard is part of the UPDATE.
func (r *VacancyRepository) Publish(ctx context.Context, vacancyID, mentorID int64) error {
	cmdTag, err := r.pg.Pool.Exec(ctx, `
		UPDATE vacancies SET status = $1
		WHERE id = $2 AND mentor_id = $3 AND status = $4
	`, models.VacancyPublished, vacancyID, mentorID, models.VacancyAccepted)
	if err != nil {
		return fmt.Errorf("error publishing vacancy: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// Close deletes the vacancy's offers and marks it closed
func (r *VacancyRepository) Close(ctx context.Context, vacancyID int64) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM mentor_vacancy_offers WHERE vacancy_id = $1`, vacancyID)
		if err != nil {
			return fmt.Errorf("error deleting offers: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE vacancies SET status = $1 WHERE id = $2
		`, models.VacancyClosed, vacancyID)
		if err != nil {
			return fmt.Errorf("error closing vacancy: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrVacancyNotFound
		}

		return nil
	})
}

// PopularTags returns the names of the most used tags, most used first
func (r *VacancyRepository) PopularTags(ctx context.Context, limit int) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT t.name
		FROM tags t
		JOIN vacancy_tags vt ON vt.tag_id = t.id
		GROUP BY t.name
		ORDER BY COUNT(*) DESC, t.name
		LIMIT $1
	`, limit)
}

// PopularOrganisations returns the organisations with the most vacancies
func (r *VacancyRepository) PopularOrganisations(ctx context.Context, limit int) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT organisation
		FROM vacancies
		GROUP BY organisation
		ORDER BY COUNT(*) DESC, organisation
		LIMIT $1
	`, limit)
}

// PopularCities returns the cities with the most vacancies
func (r *VacancyRepository) PopularCities(ctx context.Context, limit int) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT split_part(address, ',', 1) AS city
		FROM vacancies
		GROUP BY city
		ORDER BY COUNT(*) DESC, city
		LIMIT $1
	`, limit)
}

func (r *VacancyRepository) queryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.pg.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}
