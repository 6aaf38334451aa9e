package blockeddate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/excursion-booking/internal/domain"
	"github.com/m04kA/excursion-booking/pkg/dbmetrics"
	"github.com/m04kA/excursion-booking/pkg/psqlbuilder"
)

const tableName = "blocked_dates"

// Repository репозиторий заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Add блокирует дату. Повторная блокировка не ошибка: возвращает false
func (r *Repository) Add(ctx context.Context, date time.Time, reason *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("blocked_date", "reason").
		Values(domain.DateOf(date), reason).
		Suffix("ON CONFLICT (blocked_date) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Add - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Remove снимает блокировку с даты
func (r *Repository) Remove(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"blocked_date": domain.DateOf(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Remove - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Remove - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List возвращает заблокированные даты по возрастанию, границы периода опциональны
func (r *Repository) List(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From(tableName).
		OrderBy("blocked_date")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blocked_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"blocked_date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var (
			blocked domain.BlockedDate
			reason  sql.NullString
		)
		if err := rows.Scan(&blocked.ID, &blocked.Date, &reason, &blocked.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		blocked.Date = domain.DateOf(blocked.Date)
		if reason.Valid {
			blocked.Reason = &reason.String
		}
		result = append(result, &blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListDates возвращает множество заблокированных дат в [from, to], ключ - YYYY-MM-DD
func (r *Repository) ListDates(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("blocked_date").
		From(tableName).
		Where(squirrel.GtOrEq{"blocked_date": from}).
		Where(squirrel.LtOrEq{"blocked_date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make(map[string]struct{})
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: ListDates - scan row: %v", ErrScanRow, err)
		}
		dates[domain.DateKey(domain.DateOf(date))] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// Exists проверяет, заблокирована ли дата
func (r *Repository) Exists(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"blocked_date": domain.DateOf(date)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan row: %v", ErrScanRow, err)
	}

	return exists, nil
}
