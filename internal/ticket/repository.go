package ticket

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNoSessionsLeft = errors.New("no sessions left on ticket")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *Ticket) (*Ticket, error) {
	query := `
		INSERT INTO tickets (customer_id, kind, status, sessions_total, sessions_left, price_cents, valid_from, valid_until)
		VALUES ($1, $2, 'active', $3, $4, $5, $6, $7)
		RETURNING id, customer_id, kind, status, sessions_total, sessions_left, price_cents, valid_from, valid_until, created_at, updated_at
	`

	var created Ticket
	err := r.db.GetContext(ctx, &created, query,
		t.CustomerID, t.Kind, t.SessionsTotal, t.SessionsLeft, t.PriceCents, t.ValidFrom, t.ValidUntil)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Ticket, error) {
	query := `
		SELECT id, customer_id, kind, status, sessions_total, sessions_left, price_cents, valid_from, valid_until, created_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	var t Ticket
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID int) ([]Ticket, error) {
	query := `
		SELECT id, customer_id, kind, status, sessions_total, sessions_left, price_cents, valid_from, valid_until, created_at, updated_at
		FROM tickets
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	tickets := []Ticket{}
	err := r.db.SelectContext(ctx, &tickets, query, customerID)
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

// DebitSession atomically consumes one session from an active pack and
// flips it to exhausted when the last one goes.
func (r *Repository) DebitSession(ctx context.Context, id int) error {
	query := `
		UPDATE tickets
		SET sessions_left = sessions_left - 1,
		    status = CASE WHEN sessions_left - 1 = 0 THEN 'exhausted' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND sessions_left > 0
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoSessionsLeft
	}

	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tickets
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	return err
}
