package xlog

import (
	"context"
	"log/slog"
)

// Logger 是各组件接收的日志接口。
//
// 所有记录方法都带 context：启用追踪注入时 trace_id/span_id 从中提取。
// 属性只接受 slog.Attr，常用 key 见 attrs.go。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回附带固定属性的 Logger，与父级共享级别。
	With(attrs ...slog.Attr) Logger
}

// LoggerWithLevel 是 [Builder.Build] 和 [Discard] 的返回类型，
// 在 [Logger] 之上允许运行中调整级别。
type LoggerWithLevel interface {
	Logger

	SetLevel(level Level)
	GetLevel() Level

	// Enabled 报告 level 是否会被输出，可在构造昂贵属性前判断。
	Enabled(ctx context.Context, level Level) bool
}
