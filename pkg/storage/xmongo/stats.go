package xmongo

// Stats 包含 Client 的统计信息。
type Stats struct {
	// Started 是否处于已连接状态。
	Started bool

	// PingCount 健康检查次数。
	PingCount int64

	// PingErrors 健康检查失败次数。
	PingErrors int64

	// Operations 集合操作次数。
	Operations int64

	// OperationErrors 集合操作失败次数（含 ErrNotFound）。
	OperationErrors int64

	// SlowQueries 慢查询次数。
	SlowQueries int64

	// SessionsInProgress 进行中的会话数，来自 mongo.Client.NumberSessionsInProgress()。
	// 驱动 v2 不暴露连接池明细，这里不是连接数。
	SessionsInProgress int
}
