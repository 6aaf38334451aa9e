package middleware

import "context"

type contextKey string

const (
	adminKey     contextKey = "admin"
	requestIDKey contextKey = "request_id"
)

// GetAdmin возвращает логин администратора из контекста (устанавливается AdminAuth)
func GetAdmin(ctx context.Context) (string, bool) {
	admin, ok := ctx.Value(adminKey).(string)
	return admin, ok && admin != ""
}

// GetRequestID возвращает ID запроса из контекста (устанавливается RequestID)
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
