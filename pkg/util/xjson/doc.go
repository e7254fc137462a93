// Package xjson 提供文档编解码器（Codec），在任意 Go 值与 JSON 兼容的文档树之间转换。
//
// 文档树只包含以下节点：
//   - 映射：map[string]any 或 *OrderedMap（由 MapKind 决定）
//   - 序列：[]any
//   - 标量：string、bool、数值、nil、time.Time 以及通过 WithLeafTypes 声明的叶子类型
//
// # 时间戳编码
//
// time.Time 始终编码为只含保留键 "$date" 的映射：
//
//	{"$date": "2020-01-02T03:04:05.006+0000"}
//
// 解码时接受标准格式 yyyy-MM-ddTHH:mm:ss.SSS±HHMM、旧格式 yyyy-MM-ddTHH:mm:ss:SSS±HHMM
// 以及 "Z" 后缀（等价于 +0000）。
//
// # 泛型文档的归一化
//
// 解码到 any / map[string]any / []any 时，[Codec.Normalize] 会后序遍历整棵树，
// 把所有形如 {"$date": "<string>"} 的映射替换为 time.Time。映射原地修改，序列按顺序重建。
// 归一化是幂等的：已解码的 time.Time 不再匹配触发形状。
//
// # 结构体字段
//
// Encode 与 Decode 共用同一张字段表：标签为 "-" 的字段两个方向都忽略；
// 无标签名的嵌入结构体（含嵌入指针、未导出的嵌入结构体值）展开到外层，解码时 nil 嵌入指针被分配；
// 带标签名的嵌入结构体作为普通字段嵌套。同名字段按 encoding/json 的规则取舍。
//
// # 错误策略
//
// 单个时间戳格式错误不会中断整个文档的解码：受影响的强类型字段保持零值，
// 泛型节点保持原映射不变，兄弟字段照常解码。Decode 最终返回 errors.Join 合并的
// [*TimestampError]，可用 errors.Is(err, ErrMalformedTimestamp) 判断。
//
// # 容器族
//
// [MapKind] 选择 Encode 产生的映射类型，通过工厂表构造：
//   - MapHash：map[string]any
//   - MapOrdered：*OrderedMap，结构体按字段声明顺序，map 按 key 排序
//   - MapSorted：*OrderedMap，所有 key 排序
//
// 存储层（xmongo）使用 MapOrdered，使写入的 BSON 字段顺序与结构体一致。
package xjson
