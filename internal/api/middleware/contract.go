package middleware

import (
	"time"

	"github.com/m04kA/excursion-booking/internal/service/auth/models"
)

// TokenVerifier проверяет токен сессии администратора
type TokenVerifier interface {
	VerifyToken(raw string) (*models.Claims, error)
}

// HTTPMetrics сборщик метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
