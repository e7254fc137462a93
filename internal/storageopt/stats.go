package storageopt

import (
	"sync/atomic"
	"time"
)

// HealthCounter 健康检查计数器。
type HealthCounter struct {
	pings  atomic.Int64
	errors atomic.Int64
}

// Record 记录一次健康检查结果。
func (h *HealthCounter) Record(err error) {
	h.pings.Add(1)
	if err != nil {
		h.errors.Add(1)
	}
}

// PingCount 返回健康检查次数。
func (h *HealthCounter) PingCount() int64 { return h.pings.Load() }

// PingErrors 返回失败次数。
func (h *HealthCounter) PingErrors() int64 { return h.errors.Load() }

// SlowOpCounter 慢操作计数器。
type SlowOpCounter struct {
	count atomic.Int64
}

// Inc 计数加一。
func (s *SlowOpCounter) Inc() { s.count.Add(1) }

// Count 返回慢操作次数。
func (s *SlowOpCounter) Count() int64 { return s.count.Load() }

// OpCounter 操作计数器，区分总数与失败数。
type OpCounter struct {
	ops    atomic.Int64
	errors atomic.Int64
}

// Record 记录一次操作结果。
func (o *OpCounter) Record(err error) {
	o.ops.Add(1)
	if err != nil {
		o.errors.Add(1)
	}
}

// Ops 返回操作总数。
func (o *OpCounter) Ops() int64 { return o.ops.Load() }

// Errors 返回失败次数。
func (o *OpCounter) Errors() int64 { return o.errors.Load() }

// MeasureOperation 返回自 start 起经过的时间。
func MeasureOperation(start time.Time) time.Duration {
	return time.Since(start)
}
