package auth

import "errors"

var (
	// ErrInvalidCredentials неверный логин или пароль
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken токен сессии отсутствует, подделан или истёк
	ErrInvalidToken = errors.New("invalid session token")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
