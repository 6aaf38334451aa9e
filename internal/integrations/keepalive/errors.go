package keepalive

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("keepalive client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("keepalive client: invalid response")

	// ErrUnhealthy сервис ответил, но сообщил о проблеме
	ErrUnhealthy = errors.New("keepalive client: service is unhealthy")
)
