package migrations

import (
	"context"
	"fmt"

	"github.com/m04kA/excursion-booking/pkg/dbmetrics"
	"github.com/m04kA/excursion-booking/pkg/psqlbuilder"
)

const versionTable = "schema_migrations"

// migrationLockKey ключ pg_advisory_xact_lock, под которым применяются миграции
const migrationLockKey int64 = 0x45584342_00000001

// Migrator применяет журнал миграций к БД
type Migrator struct {
	db         DBExecutor
	txManager  TransactionManager
	migrations []Migration
	logger     Logger
}

// NewMigrator создает мигратор для указанного журнала миграций
func NewMigrator(db DBExecutor, txManager TransactionManager, migrations []Migration, logger Logger) *Migrator {
	return &Migrator{
		db:         db,
		txManager:  txManager,
		migrations: migrations,
		logger:     logger,
	}
}

// Up применяет все ещё не применённые миграции в одной транзакции и
// возвращает количество применённых. Параллельно запущенные экземпляры
// сервиса ждут друг друга на advisory-блокировке
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := validateLog(m.migrations); err != nil {
		return 0, err
	}

	applied := 0
	err := m.txManager.Do(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, m.db)

		if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
			return fmt.Errorf("%w: %v", ErrLock, err)
		}

		if _, err := executor.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       VARCHAR(200) NOT NULL,
			applied_at TIMESTAMPTZ  NOT NULL DEFAULT now()
		)`); err != nil {
			return fmt.Errorf("%w: create table: %v", ErrVersionTable, err)
		}

		current, err := m.currentVersion(ctx, executor)
		if err != nil {
			return err
		}

		for _, migration := range m.migrations {
			if migration.Version <= current {
				continue
			}

			for _, statement := range migration.Statements {
				if _, err := executor.ExecContext(ctx, statement); err != nil {
					return fmt.Errorf("%w: version %d (%s): %v", ErrApply, migration.Version, migration.Name, err)
				}
			}

			if err := m.record(ctx, executor, migration); err != nil {
				return err
			}

			m.logger.Info("Applied migration %d: %s", migration.Version, migration.Name)
			applied++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return applied, nil
}

func (m *Migrator) currentVersion(ctx context.Context, executor DBExecutor) (int, error) {
	query, args, err := psqlbuilder.Select("COALESCE(MAX(version), 0)").
		From(versionTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: build select query: %v", ErrVersionTable, err)
	}

	var version int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, fmt.Errorf("%w: read version: %v", ErrVersionTable, err)
	}

	return version, nil
}

func (m *Migrator) record(ctx context.Context, executor DBExecutor, migration Migration) error {
	query, args, err := psqlbuilder.Insert(versionTable).
		Columns("version", "name").
		Values(migration.Version, migration.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: build insert query: %v", ErrVersionTable, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: record version %d: %v", ErrVersionTable, migration.Version, err)
	}

	return nil
}

func validateLog(migrations []Migration) error {
	previous := 0
	for _, migration := range migrations {
		if migration.Version <= previous {
			return fmt.Errorf("%w: %d after %d", ErrInvalidLog, migration.Version, previous)
		}
		previous = migration.Version
	}
	return nil
}
