package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/excursion-booking/internal/domain"
)

var validate = validator.New()

// normalizeRequest обрезает пробелы, пустые необязательные поля превращает в nil
func normalizeRequest(req *Request) {
	req.RequesterName = strings.TrimSpace(req.RequesterName)
	req.InstitutionName = strings.TrimSpace(req.InstitutionName)
	req.GroupLabel = strings.TrimSpace(req.GroupLabel)
	req.ExcursionDate = strings.TrimSpace(req.ExcursionDate)
	req.ContactPhone = strings.TrimSpace(req.ContactPhone)
	req.GroupProfile = trimOptional(req.GroupProfile)
	req.Notes = trimOptional(req.Notes)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validateRequest шаг 1: обязательные поля и ограничения длины
func validateRequest(req *Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Сначала сообщаем о пропущенных полях, затем о слишком длинных
	for _, fe := range validationErrs {
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return fmt.Errorf("%w: %s", ErrMissingField, fe.Field())
		}
	}

	fe := validationErrs[0]
	return fmt.Errorf("%w: %s must be at most %s", ErrFieldOutOfRange, fe.Field(), fe.Param())
}

// parseExcursionDate шаг 2: дата в формате YYYY-MM-DD
func parseExcursionDate(raw string) (time.Time, error) {
	date, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}
	return date, nil
}

// validateSchedule шаги 3-4: дата не в прошлом и день недели открыт
func validateSchedule(date, today time.Time, schedule domain.Schedule) error {
	if date.Before(today) {
		return fmt.Errorf("%w: %s", ErrPastDate, domain.DateKey(date))
	}

	if schedule.IsClosed(date.Weekday()) {
		return fmt.Errorf("%w: %s", ErrClosedWeekday, domain.WeekdaysFull[domain.MondayIndex(date.Weekday())])
	}

	return nil
}
