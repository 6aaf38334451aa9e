package unblock_date

import "context"

type BlockedDateService interface {
	Unblock(ctx context.Context, rawDate string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
