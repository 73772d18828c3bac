package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/api/internal/models"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, contact models.Contact) error {
	const query = `
		INSERT INTO contacts (
			id, name, email, phone, message, product_id, product_name, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		contact.ID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Message,
		contact.ProductID,
		contact.ProductName,
	)
	return err
}

func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	const query = `
		SELECT id, name, email, phone, message, product_id, product_name, submitted_at
		FROM contacts ORDER BY submitted_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Phone,
			&contact.Message,
			&contact.ProductID,
			&contact.ProductName,
			&contact.SubmittedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
