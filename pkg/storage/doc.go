// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xmongo: 基于模板查询的 MongoDB 文档存储客户端
//
// 设计原则：
//   - 集合句柄按文档形状参数化，编解码统一走 xjson.Codec
//   - 内置可观测性（追踪、指标、慢查询检测）
//   - 不做重试，超时由调用方 context 决定
package storage
