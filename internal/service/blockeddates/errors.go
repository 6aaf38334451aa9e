package blockeddates

import "errors"

var (
	// ErrNotBlocked возвращается при снятии блокировки с незаблокированной даты
	ErrNotBlocked = errors.New("date is not blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
