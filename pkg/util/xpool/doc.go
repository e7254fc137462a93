// Package xpool 提供泛型的有界 worker pool。
//
// Pool 以固定数量的 worker 消费有界队列中的任务：
//   - Submit 永不阻塞，队列满时返回 ErrQueueFull，适合可丢弃的通知类任务
//   - Close 等待队列排空；Shutdown(ctx) 在 ctx 结束时提前返回，剩余任务由 Done() 观察
//   - handler panic 被恢复并记录日志，不影响其他任务
//
// xdocstore 中 Pool 承载慢操作的异步钩子（见 internal/storageopt）。
//
// Close/Shutdown 不可在 handler 内调用，否则会死锁。
package xpool
