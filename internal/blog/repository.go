package blog

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPostNotFound = errors.New("post not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req PostRequest) (*Post, error) {
	query := `
		INSERT INTO posts (title, body, cover_url, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, body, cover_url, published, created_at, updated_at
	`

	var post Post
	err := r.db.GetContext(ctx, &post, query, req.Title, req.Body, req.CoverURL, req.Published)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT id, title, body, cover_url, published, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var post Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// List returns posts, newest first. publishedOnly hides drafts from the
// public site.
func (r *Repository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]Post, error) {
	query := `
		SELECT id, title, body, cover_url, published, created_at, updated_at
		FROM posts
		WHERE (NOT $1 OR published)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	posts := []Post{}
	err := r.db.SelectContext(ctx, &posts, query, publishedOnly, limit, offset)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *Repository) Count(ctx context.Context, publishedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE (NOT $1 OR published)`

	var count int
	err := r.db.GetContext(ctx, &count, query, publishedOnly)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) Update(ctx context.Context, id int, req PostRequest) (*Post, error) {
	query := `
		UPDATE posts
		SET title = $2, body = $3, cover_url = $4, published = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, body, cover_url, published, created_at, updated_at
	`

	var post Post
	err := r.db.GetContext(ctx, &post, query, id, req.Title, req.Body, req.CoverURL, req.Published)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
