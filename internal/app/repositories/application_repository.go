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

// ApplicationRepository handles database operations for intern applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

const applicationColumns = `id, course, education, resume, citizenship, graduation_date, city, status`

func scanApplication(row pgx.Row) (*models.InternApplication, error) {
	var app models.InternApplication
	err := row.Scan(
		&app.ID,
		&app.Course,
		&app.Education,
		&app.Resume,
		&app.Citizenship,
		&app.GraduationDate,
		&app.City,
		&app.Status,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Upsert inserts or replaces the applicant's application. Resubmission
// overwrites the previous one, including its screening status.
func (r *ApplicationRepository) Upsert(ctx context.Context, app *models.InternApplication) error {
	query := `
		INSERT INTO intern_applications (id, course, education, resume, citizenship,
			graduation_date, city, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			course = EXCLUDED.course,
			education = EXCLUDED.education,
			resume = EXCLUDED.resume,
			citizenship = EXCLUDED.citizenship,
			graduation_date = EXCLUDED.graduation_date,
			city = EXCLUDED.city,
			status = EXCLUDED.status
	`

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.Course,
		app.Education,
		app.Resume,
		app.Citizenship,
		app.GraduationDate,
		app.City,
		app.Status,
	)
	if err != nil {
		return fmt.Errorf("error upserting application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by the applicant's user id
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.InternApplication, error) {
	query := fmt.Sprintf(`SELECT %s FROM intern_applications WHERE id = $1`, applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// List retrieves applications, optionally filtered by status
func (r *ApplicationRepository) List(ctx context.Context, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.InternApplication, error) {
	query := fmt.Sprintf(`SELECT %s FROM intern_applications`, applicationColumns)
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.InternApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// Count returns the number of applications, optionally filtered by status
func (r *ApplicationRepository) Count(ctx context.Context, status *models.ApplicationStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM intern_applications`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}

	return count, nil
}

// UpdateStatus sets the application status
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE intern_applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// StatusCounts returns per-status application counts
func (r *ApplicationRepository) StatusCounts(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM intern_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int64)
	for rows.Next() {
		var status models.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// ListApprovedApplicants retrieves the users behind approved applications,
// used for school-invite mailings.
func (r *ApplicationRepository) ListApprovedApplicants(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.fio
		FROM intern_applications a
		JOIN users u ON u.id = a.id
		WHERE a.status = $1 AND u.active
		ORDER BY u.id
	`, models.ApplicationApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FIO); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
