package migrations

import "fmt"

// Migration одна версия схемы. Каждый запрос идемпотентен
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

// All журнал миграций в порядке применения
var All = []Migration{
	{
		Version: 1,
		Name:    "create_bookings",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS bookings (
				id                 SERIAL PRIMARY KEY,
				requester_name     VARCHAR(200) NOT NULL,
				institution_name   VARCHAR(200) NOT NULL,
				group_label        VARCHAR(20)  NOT NULL,
				group_profile      VARCHAR(100),
				excursion_date     DATE         NOT NULL,
				contact_phone      VARCHAR(20)  NOT NULL,
				participants_count INTEGER      NOT NULL CHECK (participants_count > 0),
				created_at         TIMESTAMPTZ  NOT NULL DEFAULT now(),
				CONSTRAINT bookings_excursion_date_key UNIQUE (excursion_date)
			)`,
		},
	},
	{
		Version: 2,
		Name:    "add_booking_status",
		Statements: []string{
			`ALTER TABLE bookings ADD COLUMN IF NOT EXISTS status VARCHAR(20) DEFAULT 'pending'`,
			`UPDATE bookings SET status = 'pending' WHERE status IS NULL`,
			`ALTER TABLE bookings ALTER COLUMN status SET NOT NULL`,
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`,
			`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'cancelled'))`,
		},
	},
	{
		Version: 3,
		Name:    "add_additional_info",
		Statements: []string{
			`ALTER TABLE bookings ADD COLUMN IF NOT EXISTS additional_info TEXT`,
		},
	},
	{
		Version: 4,
		Name:    "create_blocked_dates",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS blocked_dates (
				id           SERIAL PRIMARY KEY,
				blocked_date DATE        NOT NULL UNIQUE,
				reason       VARCHAR(500),
				created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
	},
	{
		Version: 5,
		Name:    "drop_unique_excursion_date",
		Statements: []string{
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_excursion_date_key`,
		},
	},
	{
		Version: 6,
		Name:    "index_active_bookings_by_date",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_bookings_active_date ON bookings (excursion_date) WHERE status <> 'cancelled'`,
		},
	},
	{
		// Базы первой версии приложения создавали bookings со старыми именами колонок
		// и blocked_dates без reason
		Version: 7,
		Name:    "adopt_legacy_columns",
		Statements: []string{
			renameColumn("bookings", "school_name", "institution_name"),
			renameColumn("bookings", "class_number", "group_label"),
			renameColumn("bookings", "class_profile", "group_profile"),
			renameColumn("bookings", "contact_person", "requester_name"),
			renameColumn("bookings", "booking_date", "created_at"),
			`ALTER TABLE blocked_dates ADD COLUMN IF NOT EXISTS reason VARCHAR(500)`,
		},
	},
}

// renameColumn переименовывает колонку, только если старая есть, а новой ещё нет
func renameColumn(table, from, to string) string {
	return fmt.Sprintf(`DO $$
BEGIN
	IF EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = '%[1]s' AND column_name = '%[2]s'
	) AND NOT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = '%[1]s' AND column_name = '%[3]s'
	) THEN
		ALTER TABLE %[1]s RENAME COLUMN %[2]s TO %[3]s;
	END IF;
END $$`, table, from, to)
}
