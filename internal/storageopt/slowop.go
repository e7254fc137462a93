package storageopt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omeyang/xdocstore/pkg/util/xpool"
)

// SlowOpHook 慢操作同步钩子。
//
// 在请求路径上同步执行，钩子耗时直接计入请求延迟。
// 网络或磁盘 IO 请使用 AsyncSlowOpHook。
type SlowOpHook[T any] func(ctx context.Context, info T)

// AsyncSlowOpHook 慢操作异步钩子。
// 不接收 context：异步执行时原请求的 ctx 可能已结束。
type AsyncSlowOpHook[T any] func(info T)

// 默认值。
const (
	DefaultAsyncWorkers   = 4
	DefaultAsyncQueueSize = 1000
)

// SlowOpOptions 慢操作检测配置。
type SlowOpOptions[T any] struct {
	Threshold      time.Duration
	SyncHook       SlowOpHook[T]
	AsyncHook      AsyncSlowOpHook[T]
	AsyncWorkers   int
	AsyncQueueSize int

	// Logger 异步钩子 panic 的日志输出，nil 时使用 slog.Default()。
	Logger xpool.Logger
}

// SlowOpDetector 慢操作检测器。并发安全。
type SlowOpDetector[T any] struct {
	opts SlowOpOptions[T]

	mu     sync.RWMutex
	pool   *xpool.Pool[T]
	closed bool
}

// NewSlowOpDetector 创建检测器。AsyncHook 非 nil 时立即创建 worker pool，
// pool 参数非法时返回错误。
func NewSlowOpDetector[T any](opts SlowOpOptions[T]) (*SlowOpDetector[T], error) {
	if opts.AsyncWorkers <= 0 {
		opts.AsyncWorkers = DefaultAsyncWorkers
	}
	if opts.AsyncQueueSize <= 0 {
		opts.AsyncQueueSize = DefaultAsyncQueueSize
	}

	d := &SlowOpDetector[T]{opts: opts}
	if opts.AsyncHook != nil {
		pool, err := xpool.New(opts.AsyncWorkers, opts.AsyncQueueSize, func(info T) {
			opts.AsyncHook(info)
		}, xpool.WithName("slow-op"), xpool.WithLogger(opts.Logger))
		if err != nil {
			return nil, fmt.Errorf("storageopt: create async pool: %w", err)
		}
		d.pool = pool
	}
	return d, nil
}

// Observe 在 elapsed >= 阈值时触发钩子，返回是否判定为慢操作。
func (d *SlowOpDetector[T]) Observe(ctx context.Context, info T, elapsed time.Duration) bool {
	if d == nil || d.opts.Threshold <= 0 || elapsed < d.opts.Threshold {
		return false
	}
	if d.opts.SyncHook != nil {
		d.opts.SyncHook(ctx, info)
	}

	d.mu.RLock()
	if !d.closed && d.pool != nil {
		_ = d.pool.Submit(info) //nolint:errcheck // 队列满时丢弃通知
	}
	d.mu.RUnlock()
	return true
}

// Threshold 返回阈值。
func (d *SlowOpDetector[T]) Threshold() time.Duration {
	if d == nil {
		return 0
	}
	return d.opts.Threshold
}

// Close 关闭检测器并等待已提交的异步钩子执行完。可重复调用。
//
// 设计决策: pool 在锁外关闭，排空期间并发的 Observe 不会被写锁阻塞。
func (d *SlowOpDetector[T]) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	pool := d.pool
	d.pool = nil
	d.mu.Unlock()

	if pool != nil {
		_ = pool.Close() //nolint:errcheck // 仅在重复关闭时返回错误
	}
}
