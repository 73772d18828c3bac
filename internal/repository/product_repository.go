package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/api/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, title, description, creator_email, images, created_at, updated_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var product models.Product
	if err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.CreatorEmail,
		&product.Images,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product models.Product) error {
	const query = `
		INSERT INTO products (
			id, title, description, creator_email, images, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.CreatorEmail,
		product.Images,
	)
	return err
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *ProductRepository) Update(ctx context.Context, product models.Product) error {
	const query = `
		UPDATE products
		SET title = $2, description = $3, images = $4, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Images,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteByCreatorEmail backs the optional account-deletion cascade.
func (r *ProductRepository) DeleteByCreatorEmail(ctx context.Context, email string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE creator_email = $1`, email)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
