package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput общая ошибка некорректной заявки, пользователь может исправить и отправить снова
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRejected общая ошибка отказа по бизнес-правилам
	ErrRejected = errors.New("create_booking: booking rejected")

	// ErrInternal возвращается при внутренних ошибках usecase (хранилище недоступно)
	ErrInternal = errors.New("create_booking: internal error")
)

var (
	// ErrMissingField не заполнено обязательное поле
	ErrMissingField = fmt.Errorf("%w: missing required field", ErrInvalidInput)

	// ErrFieldOutOfRange значение поля слишком длинное или вне допустимого диапазона
	ErrFieldOutOfRange = fmt.Errorf("%w: field value out of range", ErrInvalidInput)

	// ErrMalformedDate дата не в формате YYYY-MM-DD или не существует
	ErrMalformedDate = fmt.Errorf("%w: malformed excursion date", ErrInvalidInput)
)

var (
	// ErrPastDate дата экскурсии раньше сегодняшней
	ErrPastDate = fmt.Errorf("%w: excursion date is in the past", ErrRejected)

	// ErrClosedWeekday в этот день недели экскурсии не проводятся
	ErrClosedWeekday = fmt.Errorf("%w: excursions are not held on this weekday", ErrRejected)

	// ErrBlockedDate дата закрыта администратором
	ErrBlockedDate = fmt.Errorf("%w: date is blocked", ErrRejected)

	// ErrCapacityExceeded на дату не осталось мест
	ErrCapacityExceeded = fmt.Errorf("%w: no places left on this date", ErrRejected)
)
