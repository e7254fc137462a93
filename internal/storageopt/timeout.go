package storageopt

import (
	"context"
	"time"
)

// DefaultHealthTimeout 默认健康检查超时。
const DefaultHealthTimeout = 5 * time.Second

// HealthContext 附加健康检查超时。timeout <= 0 时原样返回。
//
//	ctx, cancel := storageopt.HealthContext(ctx, timeout)
//	defer cancel()
func HealthContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// OperationContext 仅在 timeout > 0 且 ctx 没有 deadline 时附加超时。
// 调用方已设置的 deadline 优先。
func OperationContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			return context.WithTimeout(ctx, timeout)
		}
	}
	return ctx, func() {}
}
