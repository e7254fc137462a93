// Package xmongo 提供基于模板查询的 MongoDB 文档存储客户端。
//
// # 设计理念
//
// xmongo 在驱动之上提供三层：
//   - Query：mongo shell 风格的宽松 JSON 模板，# 占位符按位置代入参数
//   - Client：连接生命周期、观测、慢查询检测与统计
//   - Collection[T]：绑定集合与文档形状的操作句柄，文档经 xjson.Codec 编解码
//
// 查询模板不在本地做语义校验，操作符拼写错误等由服务端拒绝。
//
// # 模板语法
//
//	xmongo.NewQuery("{age: {$gte: #}, tags: #}", 18, []string{"vip"})
//	xmongo.NewQuery("{#: 1}", "name")          // 键占位符，参数必须是字符串
//	xmongo.NewQuery("#", bson.D{{"a", 1}})     // 整个文档来自参数
//	xmongo.NewQuery("{name: /^an/i}")          // 正则字面量
//	xmongo.NewQuery("{_id: {$oid: '...'}}")    // 扩展 JSON：$oid、$date、$numberLong
//
// 整数按 int32、int64 依次收窄，带小数或溢出的按 float64。
// 空模板等价于 {}，匹配所有文档。
//
// # 生命周期
//
// NewClient 只校验配置，不建立连接。Start 连接并 Ping 主节点，
// 返回 true 表示本次调用建立了新连接。Stop 可重复调用。
// 未 Start 或已 Stop 时数据操作返回 ErrNotStarted；Close 之后 Start 返回 ErrClosed。
//
// 设计决策: Client 不是单例。需要多个数据库时创建多个 Client，
// 每个 Client 独立维护连接、统计与慢查询检测器。
//
// # 错误处理
//
// 驱动错误以 "xmongo <op> <db>.<coll>: " 为前缀包装，可用 errors.Is 判断：
//   - ErrNotFound：单文档查询无匹配
//   - ErrDuplicateKey：唯一索引冲突，仍可 errors.As 到 mongo.WriteException
//   - xjson.ErrMalformedTimestamp：时间戳无法解析，文档其余字段照常返回
//
// 需要"失败即空结果"语义时使用 Degraded，它把失败记录为 warn 日志并返回零值。
//
// # 超时
//
// 默认不加任何超时，完全依赖调用方 context。WithOperationTimeout 为没有 deadline 的
// context 设置兜底超时；Health 固定使用 WithHealthTimeout 的值。
//
// # 观测
//
// 每次操作开启一个 span（xmongo.<op>），附带 db.system、db.name、db.collection 属性。
// 超过慢查询阈值的操作触发 SlowQueryHook / AsyncSlowQueryHook，并计入 Stats。
package xmongo
