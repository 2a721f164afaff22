package schedule

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateEvent(ctx context.Context, e *Event) (*Event, error) {
	query := `
		INSERT INTO events (trainer_id, kind, weekday, start_time, training_type, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, trainer_id, kind, weekday, start_time, training_type, capacity, created_at
	`

	var created Event
	err := r.db.GetContext(ctx, &created, query,
		e.TrainerID, e.Kind, e.Weekday, e.StartTime, e.TrainingType, e.Capacity)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) ListRecurringEvents(ctx context.Context) ([]Event, error) {
	query := `
		SELECT id, trainer_id, kind, weekday, start_time, training_type, capacity, created_at
		FROM events
		WHERE kind = 'recurring'
		ORDER BY weekday ASC, start_time ASC
	`

	events := []Event{}
	err := r.db.SelectContext(ctx, &events, query)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repository) CreateSession(ctx context.Context, s *Session) (*Session, error) {
	query := `
		INSERT INTO sessions (event_id, trainer_id, training_type, start_at, end_at, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, event_id, trainer_id, training_type, start_at, end_at, capacity, created_at
	`

	var created Session
	err := r.db.GetContext(ctx, &created, query,
		s.EventID, s.TrainerID, s.TrainingType, s.StartAt, s.EndAt, s.Capacity)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) GetSessionByID(ctx context.Context, id int) (*Session, error) {
	query := `
		SELECT id, event_id, trainer_id, training_type, start_at, end_at, capacity, created_at
		FROM sessions
		WHERE id = $1
	`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Repository) SessionExistsForEventAt(ctx context.Context, eventID int, startAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM sessions
			WHERE event_id = $1 AND start_at = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, eventID, startAt)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) ListSessionsBetween(ctx context.Context, from, to time.Time) ([]SessionWithCounts, error) {
	query := `
		SELECT
			s.id,
			s.event_id,
			s.trainer_id,
			s.training_type,
			s.start_at,
			s.end_at,
			s.capacity,
			s.created_at,
			t.name AS trainer_name,
			COUNT(b.id) FILTER (WHERE b.status = 'booked') AS booked_count
		FROM sessions s
		JOIN trainers t ON s.trainer_id = t.id
		LEFT JOIN bookings b ON b.session_id = s.id
		WHERE s.start_at >= $1 AND s.start_at < $2
		GROUP BY s.id, t.name
		ORDER BY s.start_at ASC
	`

	sessions := []SessionWithCounts{}
	err := r.db.SelectContext(ctx, &sessions, query, from, to)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		sessions[i].IsFull = sessions[i].BookedCount >= sessions[i].Capacity
	}

	return sessions, nil
}

// TrainerBusy reports whether the trainer already has a session whose
// interval really overlaps [startAt, endAt). Intervals that only touch
// at a boundary do not count.
func (r *Repository) TrainerBusy(ctx context.Context, trainerID int, startAt, endAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM sessions
			WHERE trainer_id = $1 AND start_at < $3 AND end_at > $2
		)
	`

	var busy bool
	err := r.db.GetContext(ctx, &busy, query, trainerID, startAt, endAt)
	if err != nil {
		return false, err
	}

	return busy, nil
}
