package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateBooking(ctx context.Context, sessionID, customerID int, ticketID *int) (*Booking, error) {
	query := `
		INSERT INTO bookings (session_id, customer_id, ticket_id, status)
		VALUES ($1, $2, $3, 'booked')
		RETURNING id, session_id, customer_id, ticket_id, status, canceled_by, created_at
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, sessionID, customerID, ticketID)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *Repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, session_id, customer_id, ticket_id, status, canceled_by, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *Repository) CancelBooking(ctx context.Context, id int, canceledBy string) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', canceled_by = $2
		WHERE id = $1 AND status = 'booked'
	`

	result, err := r.db.ExecContext(ctx, query, id, canceledBy)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *Repository) CountActiveBookingsForSession(ctx context.Context, sessionID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE session_id = $1 AND status = 'booked'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, sessionID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CustomerHasBookingForSession(ctx context.Context, customerID, sessionID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE customer_id = $1 AND session_id = $2 AND status = 'booked'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, customerID, sessionID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) GetBookingsBySession(ctx context.Context, sessionID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.session_id,
			b.customer_id,
			b.ticket_id,
			b.status,
			b.canceled_by,
			b.created_at,
			s.start_at AS session_start,
			s.end_at AS session_end,
			s.training_type,
			t.name AS trainer_name,
			c.name AS customer_name,
			c.phone AS customer_phone
		FROM bookings b
		JOIN sessions s ON b.session_id = s.id
		JOIN trainers t ON s.trainer_id = t.id
		JOIN customers c ON b.customer_id = c.id
		WHERE b.session_id = $1
		ORDER BY b.created_at DESC
	`

	bookings := []BookingWithDetails{}
	err := r.db.SelectContext(ctx, &bookings, query, sessionID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *Repository) MarkVisited(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'visited'
		WHERE id = $1 AND status = 'booked'
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
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *Repository) CreateVisit(ctx context.Context, bookingID int, ticketID *int, isCharged bool, visitedAt time.Time) (*Visit, error) {
	query := `
		INSERT INTO visits (booking_id, ticket_id, is_charged, visited_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booking_id, ticket_id, is_charged, visited_at
	`

	var visit Visit
	err := r.db.GetContext(ctx, &visit, query, bookingID, ticketID, isCharged, visitedAt)
	if err != nil {
		return nil, err
	}

	return &visit, nil
}

func (r *Repository) ListVisits(ctx context.Context, limit, offset int) ([]VisitWithDetails, error) {
	query := `
		SELECT
			v.id,
			v.booking_id,
			v.ticket_id,
			v.is_charged,
			v.visited_at,
			b.customer_id,
			c.name AS customer_name,
			t.name AS trainer_name,
			s.start_at AS session_start
		FROM visits v
		JOIN bookings b ON v.booking_id = b.id
		JOIN customers c ON b.customer_id = c.id
		JOIN sessions s ON b.session_id = s.id
		JOIN trainers t ON s.trainer_id = t.id
		ORDER BY v.visited_at DESC
		LIMIT $1 OFFSET $2
	`

	visits := []VisitWithDetails{}
	err := r.db.SelectContext(ctx, &visits, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return visits, nil
}

func (r *Repository) CountVisits(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM visits`)
	if err != nil {
		return 0, err
	}

	return count, nil
}
