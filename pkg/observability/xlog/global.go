package xlog

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// 全局 Logger 面向命令行工具等简单场景；库代码应显式持有 Logger。
var global atomic.Pointer[LoggerWithLevel]

func init() {
	// 默认配置不会构建失败
	l, _, _ := New().Build()
	global.Store(&l)
}

// Default 返回全局 Logger。
func Default() LoggerWithLevel {
	return *global.Load()
}

// SetDefault 替换全局 Logger。nil 被忽略。
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	global.Store(&l)
}

// Discard 返回丢弃所有输出的 Logger，用于测试和静默场景。
func Discard() LoggerWithLevel {
	l, _, _ := New().SetOutput(io.Discard).SetEnrich(false).SetLevel(LevelError + 4).Build()
	return l
}

// Warn 使用全局 Logger 记录 Warn 日志。
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Warn(ctx, msg, attrs...)
}

// Info 使用全局 Logger 记录 Info 日志。
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Info(ctx, msg, attrs...)
}
