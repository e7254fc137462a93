// Package storageopt 提供 storage 子包共享的选项和运行时工具。
//
// 本包是 internal 包，仅供 pkg/storage 下的子包使用。
//
// 依赖链：pkg/storage/xmongo → internal/storageopt → pkg/util/xpool。
//
// 主要功能：
//   - BaseOptions：健康检查超时、操作超时、慢操作阈值与钩子、Observer
//   - SlowOpDetector：慢操作检测，同步钩子在请求路径执行，异步钩子交给 xpool
//   - HealthContext / OperationContext：按需附加超时
//   - 原子计数器：HealthCounter、SlowOpCounter、OpCounter
package storageopt
