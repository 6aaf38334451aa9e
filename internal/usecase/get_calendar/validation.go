package get_calendar

import "fmt"

const (
	minYear = 1
	maxYear = 9999
)

// validateMonth проверяет год и месяц после подстановки текущих значений
func validateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be in 1..12, got %d", ErrInvalidArgument, month)
	}

	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year must be in %d..%d, got %d", ErrInvalidArgument, minYear, maxYear, year)
	}

	return nil
}
