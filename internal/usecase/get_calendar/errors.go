package get_calendar

import "errors"

var (
	// ErrInvalidArgument возвращается при месяце вне 1..12 или годе вне 1..9999
	ErrInvalidArgument = errors.New("invalid calendar month")

	// ErrInternal возвращается при внутренних ошибках usecase (хранилище недоступно)
	ErrInternal = errors.New("usecase: internal error")
)
