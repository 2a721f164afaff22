package trainer

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func trainerColumns() []string {
	return []string{"id", "name", "phone", "specialty", "photo_url", "is_active", "created_at"}
}

func TestCreateAndGetTrainer(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	specialty := "Кроссфит"

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trainers (name, phone, specialty, photo_url, is_active) VALUES ($1, $2, $3, $4, TRUE) RETURNING id, name, phone, specialty, photo_url, is_active, created_at")).
		WithArgs("Анна", "+79990001122", specialty, nil).
		WillReturnRows(sqlmock.NewRows(trainerColumns()).
			AddRow(1, "Анна", "+79990001122", specialty, nil, true, now))

	tr, err := repo.Create(context.Background(), &Trainer{Name: "Анна", Phone: "+79990001122", Specialty: specialty})
	require.NoError(t, err)
	require.Equal(t, 1, tr.ID)
	require.True(t, tr.IsActive)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, phone, specialty, photo_url, is_active, created_at FROM trainers WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(trainerColumns()).
			AddRow(1, "Анна", "+79990001122", specialty, nil, true, now))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Анна", got.Name)
}

func TestListActiveTrainers(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM trainers WHERE is_active").
		WillReturnRows(sqlmock.NewRows(trainerColumns()).
			AddRow(2, "Анна", "+79990001122", "Йога", nil, true, now).
			AddRow(1, "Сергей", "+79993334455", "Бокс", nil, true, now))

	trainers, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, trainers, 2)
	require.Equal(t, "Анна", trainers[0].Name)
}

func TestDeactivateTrainer(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainers SET is_active = FALSE WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}
