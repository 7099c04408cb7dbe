package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是 realm / backend 共用的最小日志接口：结构化字段 + ctx 透传 trace。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}

// Nop 丢弃所有日志，测试里用。
func Nop() Logger {
	return NewZapLogger(nil)
}
