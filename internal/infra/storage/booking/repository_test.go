package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/excursion-booking/internal/domain"
	"github.com/m04kA/excursion-booking/pkg/dbmetrics"
)

func newRepoMock(t *testing.T) (*dbmetrics.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return dbmetrics.Wrap(db, nil), mock, func() { db.Close() }
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO bookings \(requester_name,institution_name,group_label,group_profile,excursion_date,contact_phone,participants_count,additional_info,status\) VALUES .* RETURNING id, created_at`).
		WithArgs("Иванова", "Школа 5", "10А", nil, sqlmock.AnyArg(), "+79990000000", 25, nil, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

	booking, err := repo.Create(context.Background(), &domain.Booking{
		RequesterName:     "Иванова",
		InstitutionName:   "Школа 5",
		GroupLabel:        "10А",
		ExcursionDate:     domain.NewDate(2026, 3, 10),
		ContactPhone:      "+79990000000",
		ParticipantsCount: 25,
		Status:            domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, createdAt, booking.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateCheckViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "bookings_participants_count_check"})

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusPending})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation))
}

func TestRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	rows := bookingRows().AddRow(
		int64(3), "Петров", "Гимназия 1", "9Б", "физмат",
		time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), "+7000", int64(12), nil, "confirmed",
		time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC),
	)
	mock.ExpectQuery(`SELECT id, requester_name, .* FROM bookings WHERE id = \$1$`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	booking, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Петров", booking.RequesterName)
	require.NotNil(t, booking.GroupProfile)
	assert.Equal(t, "физмат", *booking.GroupProfile)
	assert.Nil(t, booking.Notes)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, domain.NewDate(2026, 4, 2), booking.ExcursionDate)
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepositoryGetByIDLocksRowInTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(bookingRows().AddRow(
			int64(1), "a", "b", "c", nil, time.Now(), "p", int64(1), nil, "pending", time.Now(),
		))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListExcludesCancelledByDefault(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	from := domain.NewDate(2026, 5, 1)
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE excursion_date >= \$1 AND status <> \$2 ORDER BY excursion_date DESC, id DESC`).
		WithArgs(from, "cancelled").
		WillReturnRows(bookingRows().
			AddRow(int64(2), "a", "b", "c", nil, domain.NewDate(2026, 5, 3), "p", int64(1), "note", "pending", time.Now()).
			AddRow(int64(1), "a", "b", "c", nil, domain.NewDate(2026, 5, 2), "p", int64(1), nil, "confirmed", time.Now()))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[0].ID)
	require.NotNil(t, bookings[0].Notes)
	assert.Equal(t, "note", *bookings[0].Notes)
}

func TestRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	status := domain.StatusCancelled
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE status = \$1 ORDER BY`).
		WithArgs("cancelled").
		WillReturnRows(bookingRows())

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestRepositoryCountActiveByDateRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	from := domain.NewDate(2026, 6, 1)
	to := domain.NewDate(2026, 6, 30)
	mock.ExpectQuery(`SELECT excursion_date, COUNT\(\*\) FROM bookings WHERE status <> \$1 AND excursion_date >= \$2 AND excursion_date <= \$3 GROUP BY excursion_date`).
		WithArgs("cancelled", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"excursion_date", "count"}).
			AddRow(domain.NewDate(2026, 6, 3), int64(2)).
			AddRow(domain.NewDate(2026, 6, 4), int64(1)))

	counts, err := repo.CountActiveByDateRange(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2026-06-03": 2, "2026-06-04": 1}, counts)
}

func TestRepositoryCountActiveOnDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	date := domain.NewDate(2026, 6, 3)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE excursion_date = \$1 AND status <> \$2`).
		WithArgs(date, "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	count, err := repo.CountActiveOnDate(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepositoryLockDateRequiresTransaction(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	err := repo.LockDate(context.Background(), domain.NewDate(2026, 6, 3))
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestRepositoryLockDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	date := domain.NewDate(2026, 6, 3)
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).
		WithArgs(int64(dateLockNamespace), date.Unix()/86400).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, repo.LockDate(dbmetrics.WithTx(context.Background(), tx), date))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE bookings SET status = \$1 WHERE id = \$2`).
		WithArgs("confirmed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.StatusConfirmed))
}

func TestRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE bookings SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 9))

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 10), ErrBookingNotFound)
}
