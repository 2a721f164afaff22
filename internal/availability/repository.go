package availability

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

func (r *Repository) ListAll(ctx context.Context) ([]WeekdayAvailability, error) {
	query := `
		SELECT id, weekday, start_time, end_time, updated_at
		FROM weekday_availability
		ORDER BY weekday ASC
	`

	list := []WeekdayAvailability{}
	err := r.db.SelectContext(ctx, &list, query)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) Upsert(ctx context.Context, weekday int, startTime, endTime string) (*WeekdayAvailability, error) {
	query := `
		INSERT INTO weekday_availability (weekday, start_time, end_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (weekday)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, updated_at = NOW()
		RETURNING id, weekday, start_time, end_time, updated_at
	`

	var a WeekdayAvailability
	err := r.db.GetContext(ctx, &a, query, weekday, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *Repository) Delete(ctx context.Context, weekday int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM weekday_availability WHERE weekday = $1`, weekday)
	return err
}
