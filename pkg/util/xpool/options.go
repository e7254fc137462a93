package xpool

import (
	"context"
	"log/slog"
)

// Logger 记录 worker panic 的日志接口。xlog.Logger 满足该接口。
type Logger interface {
	Error(ctx context.Context, msg string, attrs ...slog.Attr)
}

// slogDefault 在未配置 Logger 时把日志转发到 slog.Default()。
type slogDefault struct{}

func (slogDefault) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.Default().LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// Option 配置 Pool。
type Option func(*options)

type options struct {
	logger Logger
	name   string
}

func defaultOptions() options {
	return options{logger: slogDefault{}}
}

// WithLogger 设置 panic 日志输出，nil 被忽略。
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 pool 名称，作为 panic 日志的 pool 属性。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
