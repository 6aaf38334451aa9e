package blockeddate

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/excursion-booking/internal/domain"
	"github.com/m04kA/excursion-booking/pkg/dbmetrics"
)

func newRepoMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(dbmetrics.Wrap(db, nil)), mock, func() { db.Close() }
}

func TestRepositoryAdd(t *testing.T) {
	repo, mock, cleanup := newRepoMock(t)
	defer cleanup()

	date := domain.NewDate(2026, 5, 9)
	reason := "праздник"
	mock.ExpectExec(`INSERT INTO blocked_dates \(blocked_date,reason\) VALUES \(\$1,\$2\) ON CONFLICT \(blocked_date\) DO NOTHING`).
		WithArgs(date, reason).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Add(context.Background(), date, &reason)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRepositoryAddAlreadyBlocked(t *testing.T) {
	repo, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO blocked_dates`).
		WithArgs(domain.NewDate(2026, 5, 9), nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Add(context.Background(), domain.NewDate(2026, 5, 9), nil)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRepositoryRemove(t *testing.T) {
	repo, mock, cleanup := newRepoMock(t)
	defer cleanup()

	date := domain.NewDate(2026, 5, 9)
	mock.ExpectExec(`DELETE FROM blocked_dates WHERE blocked_date = \$1`).
		WithArgs(date).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Remove(context.Background(), date))

	mock.ExpectExec(`DELETE FROM blocked_dates WHERE blocked_date = \$1`).
		WithArgs(date).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Remove(context.Background(), date), ErrNotFound)
}

func TestRepositoryList(t *testing.T) {
	repo, mock, cleanup := newRepoMock(t)
	defer cleanup()

	createdAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, blocked_date, reason, created_at FROM blocked_dates ORDER BY blocked_date`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blocked_date", "reason", "created_at"}).
			AddRow(int64(1), domain.NewDate(2026, 5, 1), "Первомай", createdAt).
			AddRow(int64(2), domain.NewDate(2026, 5, 9), nil, createdAt))

	items, err := repo.List(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Reason)
	assert.Equal(t, "Первомай", *items[0].Reason)
	assert.Nil(t, items[1].Reason)
	assert.Equal(t, domain.NewDate(2026, 5, 9), items[1].Date)
}

func TestRepositoryListDates(t *testing.T) {
	repo, mock, cleanup := newRepoMock(t)
	defer cleanup()

	from := domain.NewDate(2026, 5, 1)
	to := domain.NewDate(2026, 5, 31)
	mock.ExpectQuery(`SELECT blocked_date FROM blocked_dates WHERE blocked_date >= \$1 AND blocked_date <= \$2`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"blocked_date"}).AddRow(domain.NewDate(2026, 5, 9)))

	dates, err := repo.ListDates(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"2026-05-09": {}}, dates)
}

func TestRepositoryExists(t *testing.T) {
	repo, mock, cleanup := newRepoMock(t)
	defer cleanup()

	date := domain.NewDate(2026, 5, 9)
	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM blocked_dates WHERE blocked_date = \$1 \)`).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), date)
	require.NoError(t, err)
	assert.True(t, exists)
}
