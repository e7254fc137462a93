// Package xlog 提供基于 log/slog 的结构化日志。
//
// 核心约定：
//   - 所有方法都接收 context.Context，便于从 ctx 注入 trace_id/span_id
//   - 方法只接受 slog.Attr，避免隐式 key-value 转换
//   - 级别可运行时调整（Leveler）
//   - Build() 返回 cleanup 函数，用于关闭轮转文件
//
// 基本用法：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("info").
//		SetFormat("json").
//		SetRotation("/var/log/xdocctl.log", xlog.RotationMaxSize(100)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
//	logger.Warn(ctx, "count failed", xlog.Component("xmongo"), xlog.Err(err))
//
// 启用 enrich（默认）时，ctx 中有效的 OpenTelemetry span 会以 trace_id、span_id
// 字段写入每条日志。
package xlog
