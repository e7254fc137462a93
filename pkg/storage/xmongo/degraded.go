package xmongo

import (
	"context"
	"errors"

	"github.com/omeyang/xdocstore/pkg/observability/xlog"
)

// Degraded 把 Collection 的失败降级为空结果：计数返回 0，布尔返回 false，
// 查询返回零值或 nil 切片，同时以 warn 级别记录日志。
//
// 适用于把存储当作尽力而为依赖的调用方。需要区分"没有数据"和"查询失败"时，
// 直接使用 Collection。
//
// 以下情况不视为失败，不记录日志：
//   - 单文档查询无匹配（ErrNotFound），返回 (零值, false)
//   - 插入遇到唯一键冲突（ErrDuplicateKey），返回 false
//   - BulkSet 传入空列表，返回 0
type Degraded[T any] struct {
	coll   *Collection[T]
	logger xlog.Logger
}

// NewDegraded 创建降级适配器。logger 为 nil 时使用集合所属客户端的 logger。
func NewDegraded[T any](coll *Collection[T], logger xlog.Logger) *Degraded[T] {
	if logger == nil {
		if coll != nil && coll.client != nil {
			logger = coll.client.logger
		} else {
			logger = xlog.Default()
		}
	}
	return &Degraded[T]{coll: coll, logger: logger}
}

// Collection 返回底层集合句柄。
func (d *Degraded[T]) Collection() *Collection[T] { return d.coll }

// warn 记录失败。ctx 为 nil 时（此时错误即 ErrNilContext）改用 Background 记录。
func (d *Degraded[T]) warn(ctx context.Context, op string, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name := ""
	if d.coll != nil {
		name = d.coll.name
	}
	d.logger.Warn(ctx, "xmongo "+op+" failed",
		xlog.Operation(op),
		xlog.Collection(name),
		xlog.Err(err),
	)
}

// found 处理单文档查询结果，ErrNotFound 不记录日志。
func (d *Degraded[T]) found(ctx context.Context, op string, doc T, err error) (T, bool) {
	if err == nil {
		return doc, true
	}
	if !errors.Is(err, ErrNotFound) {
		d.warn(ctx, op, err)
	}
	var zero T
	return zero, false
}

// Count 返回匹配文档数，失败时返回 0。
func (d *Degraded[T]) Count(ctx context.Context, q Query) int64 {
	n, err := d.coll.Count(ctx, q)
	if err != nil {
		d.warn(ctx, "count", err)
		return 0
	}
	return n
}

// Exists 判断是否存在匹配文档，失败时返回 false。
func (d *Degraded[T]) Exists(ctx context.Context, q Query) bool {
	ok, err := d.coll.Exists(ctx, q)
	if err != nil {
		d.warn(ctx, "exists", err)
		return false
	}
	return ok
}

// CountPosition 返回文档在排序结果中的位置，不存在或失败时返回 -1。
func (d *Degraded[T]) CountPosition(ctx context.Context, id any, q Query, sort string) int64 {
	pos, err := d.coll.CountPosition(ctx, id, q, sort)
	if err != nil {
		d.warn(ctx, "count_position", err)
		return -1
	}
	return pos
}

// CountFind 返回 Find 在同样条件下的结果条数，失败时返回 0。
func (d *Degraded[T]) CountFind(ctx context.Context, q Query, o *FindOptions) int64 {
	n, err := d.coll.CountFind(ctx, q, o)
	if err != nil {
		d.warn(ctx, "count_find", err)
		return 0
	}
	return n
}

// Get 按 _id 查询。
func (d *Degraded[T]) Get(ctx context.Context, id any) (T, bool) {
	doc, err := d.coll.Get(ctx, id)
	return d.found(ctx, "get", doc, err)
}

// FindOne 返回第一条匹配文档。
func (d *Degraded[T]) FindOne(ctx context.Context, q Query, o *FindOneOptions) (T, bool) {
	doc, err := d.coll.FindOne(ctx, q, o)
	return d.found(ctx, "find_one", doc, err)
}

// Find 返回所有匹配文档，失败时返回 nil。
// 只有时间戳解析失败时记录日志并照常返回文档。
func (d *Degraded[T]) Find(ctx context.Context, q Query, o *FindOptions) []T {
	docs, err := d.coll.Find(ctx, q, o)
	if err != nil {
		d.warn(ctx, "find", err)
		if timestampOnly(err) {
			return docs
		}
		return nil
	}
	return docs
}

// CursorFind 返回游标，失败时返回 nil。
func (d *Degraded[T]) CursorFind(ctx context.Context, q Query, o *FindOptions) *Cursor[T] {
	cur, err := d.coll.CursorFind(ctx, q, o)
	if err != nil {
		d.warn(ctx, "cursor_find", err)
		return nil
	}
	return cur
}

// FindAndModify 原子修改并返回文档。
func (d *Degraded[T]) FindAndModify(ctx context.Context, q, modifier Query, o *FindAndModifyOptions) (T, bool) {
	doc, err := d.coll.FindAndModify(ctx, q, modifier, o)
	return d.found(ctx, "find_and_modify", doc, err)
}

// FindAndRemove 原子删除并返回文档。
func (d *Degraded[T]) FindAndRemove(ctx context.Context, q Query, o *FindAndRemoveOptions) (T, bool) {
	doc, err := d.coll.FindAndRemove(ctx, q, o)
	return d.found(ctx, "find_and_remove", doc, err)
}

// Set 按 _id upsert 文档，失败时返回 false。
func (d *Degraded[T]) Set(ctx context.Context, doc T) bool {
	ok, err := d.coll.Set(ctx, doc)
	if err != nil {
		d.warn(ctx, "set", err)
		return false
	}
	return ok
}

// BulkSet 批量 upsert，返回新插入的文档数，失败时返回 0。
func (d *Degraded[T]) BulkSet(ctx context.Context, docs []T) int64 {
	n, err := d.coll.BulkSet(ctx, docs)
	if err != nil {
		if !errors.Is(err, ErrEmptyDocs) {
			d.warn(ctx, "bulk_set", err)
		}
		return 0
	}
	return n
}

// Insert 严格插入，成功返回 true。唯一键冲突返回 false 且不记录日志。
func (d *Degraded[T]) Insert(ctx context.Context, doc T) bool {
	_, err := d.coll.Insert(ctx, doc)
	return d.inserted(ctx, err)
}

// InsertQuery 插入模板渲染的文档，语义同 Insert。
func (d *Degraded[T]) InsertQuery(ctx context.Context, q Query) bool {
	_, err := d.coll.InsertQuery(ctx, q)
	return d.inserted(ctx, err)
}

func (d *Degraded[T]) inserted(ctx context.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrDuplicateKey):
		return false
	default:
		d.warn(ctx, "insert", err)
		return false
	}
}

// Update 修改文档，返回匹配数加 upsert 插入数，失败时返回 0。
func (d *Degraded[T]) Update(ctx context.Context, q, modifier Query, o *UpdateOptions) int64 {
	n, err := d.coll.Update(ctx, q, modifier, o)
	if err != nil {
		d.warn(ctx, "update", err)
		return 0
	}
	return n
}

// Remove 删除匹配文档，返回删除数，失败时返回 0。
func (d *Degraded[T]) Remove(ctx context.Context, q Query) int64 {
	n, err := d.coll.Remove(ctx, q)
	if err != nil {
		d.warn(ctx, "remove", err)
		return 0
	}
	return n
}

// Distinct 返回字段的不同取值，失败时返回 nil。
func (d *Degraded[T]) Distinct(ctx context.Context, key string, q Query) []any {
	values, err := d.coll.Distinct(ctx, key, q)
	if err != nil {
		d.warn(ctx, "distinct", err)
		return nil
	}
	return values
}

// Aggregate 执行聚合管道，失败时返回 nil。
func (d *Degraded[T]) Aggregate(ctx context.Context, stages ...Query) []T {
	docs, err := d.coll.Aggregate(ctx, stages...)
	if err != nil {
		d.warn(ctx, "aggregate", err)
		return nil
	}
	return docs
}

// Index 创建索引，返回索引名，失败时返回空字符串。
func (d *Degraded[T]) Index(ctx context.Context, keys, indexOpts string) string {
	name, err := d.coll.Index(ctx, keys, indexOpts)
	if err != nil {
		d.warn(ctx, "index", err)
		return ""
	}
	return name
}
