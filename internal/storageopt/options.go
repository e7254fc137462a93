package storageopt

import (
	"time"

	"github.com/omeyang/xdocstore/pkg/observability/xmetrics"
)

// BaseOptions 存储包装器的通用选项。T 为慢操作信息类型。
type BaseOptions[T any] struct {
	// HealthTimeout 健康检查超时，默认 5 秒。
	HealthTimeout time.Duration

	// OperationTimeout 调用方 ctx 无 deadline 时附加的超时，0 表示不附加。
	OperationTimeout time.Duration

	// SlowOpThreshold 慢操作阈值，0 表示禁用检测。
	SlowOpThreshold time.Duration

	// SlowOpHook 慢操作同步钩子，在请求路径上执行。
	SlowOpHook SlowOpHook[T]

	// AsyncSlowOpHook 慢操作异步钩子，由 worker pool 执行。
	AsyncSlowOpHook AsyncSlowOpHook[T]

	// AsyncSlowOpWorkers 异步钩子 worker 数量，默认 DefaultAsyncWorkers。
	AsyncSlowOpWorkers int

	// AsyncSlowOpQueueSize 异步钩子队列大小，默认 DefaultAsyncQueueSize。队列满时丢弃。
	AsyncSlowOpQueueSize int

	// Observer 统一观测接口。
	Observer xmetrics.Observer
}

// DefaultBaseOptions 返回默认选项。
func DefaultBaseOptions[T any]() BaseOptions[T] {
	return BaseOptions[T]{
		HealthTimeout:        DefaultHealthTimeout,
		AsyncSlowOpWorkers:   DefaultAsyncWorkers,
		AsyncSlowOpQueueSize: DefaultAsyncQueueSize,
		Observer:             xmetrics.NoopObserver{},
	}
}

// SlowOpOptions 提取慢操作检测器的配置。
func (o BaseOptions[T]) SlowOpOptions() SlowOpOptions[T] {
	return SlowOpOptions[T]{
		Threshold:      o.SlowOpThreshold,
		SyncHook:       o.SlowOpHook,
		AsyncHook:      o.AsyncSlowOpHook,
		AsyncWorkers:   o.AsyncSlowOpWorkers,
		AsyncQueueSize: o.AsyncSlowOpQueueSize,
	}
}
