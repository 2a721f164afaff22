package trainer

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

func (r *Repository) Create(ctx context.Context, t *Trainer) (*Trainer, error) {
	query := `
		INSERT INTO trainers (name, phone, specialty, photo_url, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, name, phone, specialty, photo_url, is_active, created_at
	`

	var created Trainer
	err := r.db.GetContext(ctx, &created, query, t.Name, t.Phone, t.Specialty, t.PhotoURL)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, name, phone, specialty, photo_url, is_active, created_at
		FROM trainers
		WHERE id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, name, phone, specialty, photo_url, is_active, created_at
		FROM trainers
		WHERE is_active
		ORDER BY name ASC
	`

	trainers := []Trainer{}
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *Repository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE trainers SET is_active = FALSE WHERE id = $1`, id)
	return err
}
