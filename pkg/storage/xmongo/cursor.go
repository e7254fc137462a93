package xmongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/omeyang/xdocstore/pkg/util/xjson"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cursor 查询结果游标，逐条解码为 T。
//
// 游标持有服务端资源，调用方必须在所有路径上调用 Close：
//
//	cur, err := coll.CursorFind(ctx, q, nil)
//	if err != nil {
//	    return err
//	}
//	defer cur.Close(ctx)
//	for cur.Next(ctx) {
//	    doc, err := cur.Decode()
//	    ...
//	}
//	return cur.Err()
type Cursor[T any] struct {
	cur    cursorOperations
	client *Client
	op     string
	coll   string
}

func newCursor[T any](cur cursorOperations, client *Client, op, coll string) *Cursor[T] {
	return &Cursor[T]{cur: cur, client: client, op: op, coll: coll}
}

// Next 前进到下一条文档，没有更多文档或出错时返回 false，错误通过 Err 获取。
func (c *Cursor[T]) Next(ctx context.Context) bool {
	return c.cur.Next(ctx)
}

// Decode 解码当前文档。
//
// 时间戳无法解析时，对应字段为零值，返回的文档可用，
// 错误满足 errors.Is(err, xjson.ErrMalformedTimestamp)。
func (c *Cursor[T]) Decode() (T, error) {
	var doc T
	var raw bson.D
	if err := c.cur.Decode(&raw); err != nil {
		return doc, c.client.wrap(c.op, c.coll, err)
	}
	if err := c.client.decode(raw, &doc); err != nil {
		return doc, fmt.Errorf("xmongo %s %s.%s: %w", c.op, c.client.cfg.DBName, c.coll, err)
	}
	return doc, nil
}

// Err 返回迭代过程中的错误。
func (c *Cursor[T]) Err() error {
	return c.client.wrap(c.op, c.coll, c.cur.Err())
}

// Close 关闭游标，释放服务端资源。可重复调用。
func (c *Cursor[T]) Close(ctx context.Context) error {
	return c.client.wrap(c.op+" close cursor", c.coll, c.cur.Close(ctx))
}

// All 读取剩余全部文档并关闭游标，关闭错误与读取错误合并返回。
//
// 只有时间戳错误的文档照常收集，这些错误合并后随结果一起返回；
// 其他解码错误立即中止迭代。
func (c *Cursor[T]) All(ctx context.Context) (docs []T, err error) {
	defer func() {
		err = errors.Join(err, c.Close(ctx))
	}()

	docs = make([]T, 0)
	var tsErrs []error
	for c.Next(ctx) {
		doc, derr := c.Decode()
		if derr != nil {
			if !timestampOnly(derr) {
				return docs, derr
			}
			tsErrs = append(tsErrs, derr)
		}
		docs = append(docs, doc)
	}
	if err := c.Err(); err != nil {
		return docs, err
	}
	return docs, errors.Join(tsErrs...)
}

// timestampOnly 判断错误是否只由时间戳解析失败引起。
func timestampOnly(err error) bool {
	return errors.Is(err, xjson.ErrMalformedTimestamp) && !errors.Is(err, xjson.ErrDecode)
}
