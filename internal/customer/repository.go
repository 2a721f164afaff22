package customer

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Customer) (*Customer, error) {
	query := `
		INSERT INTO customers (name, phone, email, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, phone, email, comment, created_at
	`

	var created Customer
	err := r.db.GetContext(ctx, &created, query, c.Name, c.Phone, c.Email, c.Comment)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Customer, error) {
	query := `
		SELECT id, name, phone, email, comment, created_at
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *Repository) Update(ctx context.Context, id int, c *Customer) (*Customer, error) {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, comment = $5
		WHERE id = $1
		RETURNING id, name, phone, email, comment, created_at
	`

	var updated Customer
	err := r.db.GetContext(ctx, &updated, query, id, c.Name, c.Phone, c.Email, c.Comment)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Search matches a case-insensitive substring against name and phone.
// An empty query lists everyone, newest first.
func (r *Repository) Search(ctx context.Context, q string, limit, offset int) ([]Customer, error) {
	query := `
		SELECT id, name, phone, email, comment, created_at
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	customers := []Customer{}
	err := r.db.SelectContext(ctx, &customers, query, q, limit, offset)
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *Repository) Count(ctx context.Context, q string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%')
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, q)
	if err != nil {
		return 0, err
	}

	return count, nil
}
