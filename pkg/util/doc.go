// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xjson: 文档树编解码，时间戳 $date 映射、容器类型可配置、JSON 字节读写
//   - xpool: 泛型 Worker Pool，可配置 worker/队列大小、优雅关闭
package util
