package models

import "time"

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"` // bcrypt учитывает только 72 байта
}

// LoginResponse выданный токен сессии
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims данные сессии администратора
type Claims struct {
	Username  string
	SessionID string
	ExpiresAt time.Time
}
