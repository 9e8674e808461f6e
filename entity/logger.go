package entity

import "context"

// Logger specifies a contextual, structured logger.
// Sabot satisfies it, as do the recording loggers in tests.
type Logger interface {
	Info(ctx context.Context, msg string, kv ...any)
	Error(ctx context.Context, msg string, err error, kv ...any)
}
