// Package xmetrics 提供统一的观测抽象（Observer/Span）及其 OpenTelemetry 实现。
//
// 调用方只依赖 Observer 接口：
//
//	ctx, span := xmetrics.Start(ctx, observer, xmetrics.SpanOptions{
//		Component: "xmongo",
//		Operation: "find",
//		Kind:      xmetrics.KindClient,
//	})
//	defer func() { span.End(xmetrics.Result{Err: err}) }()
//
// NoopObserver 为默认实现；NewOTelObserver 同时产生 trace span 和两项指标：
//   - xdocstore.operation.total：按 component/operation/status 计数
//   - xdocstore.operation.duration：耗时直方图（秒）
package xmetrics
