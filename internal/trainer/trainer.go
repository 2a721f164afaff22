package trainer

import "time"

type Trainer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Specialty string    `db:"specialty" json:"specialty"`
	PhotoURL  *string   `db:"photo_url" json:"photo_url,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Specialty string  `json:"specialty" binding:"required"`
	PhotoURL  *string `json:"photo_url,omitempty" binding:"omitempty,url"`
}
