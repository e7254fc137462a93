package xmongo

import (
	"context"
	"time"

	"github.com/omeyang/xdocstore/internal/storageopt"
	"github.com/omeyang/xdocstore/pkg/observability/xlog"
	"github.com/omeyang/xdocstore/pkg/observability/xmetrics"
	"github.com/omeyang/xdocstore/pkg/util/xjson"
)

// =============================================================================
// 慢查询信息
// =============================================================================

// SlowQueryInfo 慢查询详细信息。
type SlowQueryInfo struct {
	// Database 数据库名称。
	Database string

	// Collection 集合名称。
	Collection string

	// Operation 操作名称（find、update、bulk_set 等）。
	Operation string

	// Query 触发慢查询的查询。
	//
	// ⚠️ 安全提示：参数可能含有敏感信息，写入日志前请注意脱敏。
	Query Query

	// Duration 操作耗时。
	Duration time.Duration
}

// SlowQueryHook 慢查询同步回调钩子，在请求路径上执行，应保持微秒级。
type SlowQueryHook = storageopt.SlowOpHook[SlowQueryInfo]

// AsyncSlowQueryHook 慢查询异步回调钩子，通过内部 worker pool 执行。
// 队列满时通知被丢弃。
type AsyncSlowQueryHook = storageopt.AsyncSlowOpHook[SlowQueryInfo]

// =============================================================================
// 配置选项
// =============================================================================

// Options 定义 Client 的配置选项。
type Options struct {
	storageopt.BaseOptions[SlowQueryInfo]

	// Logger 生命周期与降级日志的输出，默认 xlog.Default()。
	Logger xlog.Logger

	// Codec 文档编解码器，默认 NewCodec(Location)。
	Codec *xjson.Codec

	// Location 解码时间戳使用的时区，默认 UTC。设置 Codec 时被忽略。
	Location *time.Location
}

// Option 定义配置 Client 的函数类型。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		BaseOptions: storageopt.DefaultBaseOptions[SlowQueryInfo](),
		Location:    time.UTC,
	}
}

// WithHealthTimeout 设置健康检查超时时间。非正值被忽略。
func WithHealthTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.HealthTimeout = timeout
		}
	}
}

// WithOperationTimeout 设置数据操作的兜底超时，仅在调用方 context 没有 deadline 时生效。
// 默认为 0（不设兜底，完全依赖调用方 context）。负值被忽略。
func WithOperationTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= 0 {
			o.OperationTimeout = timeout
		}
	}
}

// WithSlowQueryThreshold 设置慢查询阈值。0 禁用慢查询检测，负值被忽略。
func WithSlowQueryThreshold(threshold time.Duration) Option {
	return func(o *Options) {
		if threshold >= 0 {
			o.SlowOpThreshold = threshold
		}
	}
}

// WithSlowQueryHook 设置慢查询同步回调钩子。
func WithSlowQueryHook(hook func(ctx context.Context, info SlowQueryInfo)) Option {
	return func(o *Options) {
		o.SlowOpHook = hook
	}
}

// WithAsyncSlowQueryHook 设置慢查询异步回调钩子。
func WithAsyncSlowQueryHook(hook func(info SlowQueryInfo)) Option {
	return func(o *Options) {
		o.AsyncSlowOpHook = hook
	}
}

// WithAsyncSlowQueryWorkers 设置异步慢查询 worker 数量。非正值被忽略。
func WithAsyncSlowQueryWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.AsyncSlowOpWorkers = n
		}
	}
}

// WithAsyncSlowQueryQueueSize 设置异步慢查询队列大小。非正值被忽略。
func WithAsyncSlowQueryQueueSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.AsyncSlowOpQueueSize = n
		}
	}
}

// WithObserver 设置统一观测接口。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *Options) {
		if observer != nil {
			o.Observer = observer
		}
	}
}

// WithLogger 设置日志输出。
func WithLogger(logger xlog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithCodec 设置文档编解码器。
func WithCodec(codec *xjson.Codec) Option {
	return func(o *Options) {
		if codec != nil {
			o.Codec = codec
		}
	}
}

// WithLocation 设置解码时间戳使用的时区。
func WithLocation(loc *time.Location) Option {
	return func(o *Options) {
		if loc != nil {
			o.Location = loc
		}
	}
}
