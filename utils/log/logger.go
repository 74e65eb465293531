package log

import (
	"context"
	"os"

	"go.uber.org/zap"
)

type contextKey string

const (
	SessionKey   contextKey = "session_key"
	InstructorID contextKey = "instructor_id"
)

var logger *zap.Logger

func init() {
	if os.Getenv("DEBUG") == "true" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
}

func WithCtx(ctx context.Context) *zap.Logger {
	fields := []zap.Field{}

	if v := ctx.Value(SessionKey); v != nil {
		fields = append(fields, zap.Any("session_key", v))
	}
	if v := ctx.Value(InstructorID); v != nil {
		fields = append(fields, zap.Any("instructor_id", v))
	}

	return logger.With(fields...)
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}
