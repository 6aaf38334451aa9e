package keepalive

// HealthResponse ответ /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
