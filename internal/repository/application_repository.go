package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/api/internal/models"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationColumns = `id, name, phone, email, message, image_url, status, submitted_at, updated_at`

func scanApplication(row pgx.Row) (models.CreatorApplication, error) {
	var app models.CreatorApplication
	if err := row.Scan(
		&app.ID,
		&app.Name,
		&app.Phone,
		&app.Email,
		&app.Message,
		&app.ImageURL,
		&app.Status,
		&app.SubmittedAt,
		&app.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CreatorApplication{}, ErrApplicationNotFound
		}
		return models.CreatorApplication{}, err
	}
	return app, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app models.CreatorApplication) error {
	const query = `
		INSERT INTO creator_applications (
			id, name, phone, email, message, image_url, status, submitted_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		app.ID,
		app.Name,
		app.Phone,
		app.Email,
		app.Message,
		app.ImageURL,
		app.Status,
	)
	return err
}

func (r *ApplicationRepository) List(ctx context.Context) ([]models.CreatorApplication, error) {
	const query = `SELECT ` + applicationColumns + ` FROM creator_applications ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.CreatorApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// FindLatestByEmail returns the most recent application for an email.
// Approve/reject is keyed by email, so resubmissions supersede older
// entries.
func (r *ApplicationRepository) FindLatestByEmail(ctx context.Context, email string) (models.CreatorApplication, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM creator_applications
		WHERE email = $1
		ORDER BY submitted_at DESC
		LIMIT 1
	`
	return scanApplication(r.pool.QueryRow(ctx, query, email))
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	const query = `UPDATE creator_applications SET status = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// DeleteByEmail removes every application sharing an email. Used only by
// the admin account-deletion cascade.
func (r *ApplicationRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM creator_applications WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
