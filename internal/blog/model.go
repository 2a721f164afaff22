package blog

import "time"

type Post struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	CoverURL  *string   `db:"cover_url" json:"cover_url,omitempty"`
	Published bool      `db:"published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type PostRequest struct {
	Title     string  `json:"title" binding:"required,min=2"`
	Body      string  `json:"body" binding:"required"`
	CoverURL  *string `json:"cover_url,omitempty" binding:"omitempty,url"`
	Published bool    `json:"published"`
}
