package migrations

import "errors"

var (
	// ErrLock возвращается, когда не удалось взять блокировку миграций
	ErrLock = errors.New("migrations: failed to acquire migration lock")

	// ErrVersionTable возвращается при ошибке работы с таблицей schema_migrations
	ErrVersionTable = errors.New("migrations: failed to access schema_migrations")

	// ErrApply возвращается, когда миграция не применилась
	ErrApply = errors.New("migrations: failed to apply migration")

	// ErrInvalidLog возвращается, когда версии миграций не возрастают строго
	ErrInvalidLog = errors.New("migrations: migration versions must be strictly increasing")
)
