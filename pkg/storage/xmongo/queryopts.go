package xmongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// 各操作的选项构建器。所有字段默认"未设置"，未设置的字段不会转发给驱动；
// 例如未调用 Limit 表示不限制条数，与 Limit(0) 不同。
// 构建器非并发安全，构建一次后按指针传递。方法返回接收者，可链式调用。
// 构建器之间不做交叉校验，冲突的组合由服务端拒绝。

// FindOneOptions FindOne/Get 的选项。
type FindOneOptions struct {
	projection *Query
	orderBy    *string
}

// NewFindOneOptions 创建空选项。
func NewFindOneOptions() *FindOneOptions { return &FindOneOptions{} }

// Projection 设置字段投影，例如 NewQuery("{name: 1}")。
func (o *FindOneOptions) Projection(q Query) *FindOneOptions {
	o.projection = &q
	return o
}

// OrderBy 设置排序模板，例如 "{createdAt: -1}"，查询匹配多条时决定返回哪一条。
func (o *FindOneOptions) OrderBy(sort string) *FindOneOptions {
	o.orderBy = &sort
	return o
}

// FindOptions Find/CursorFind/CountFind 的选项。
type FindOptions struct {
	projection *Query
	limit      *int64
	skip       *int64
	sort       *string
	hint       *string
}

// NewFindOptions 创建空选项。
func NewFindOptions() *FindOptions { return &FindOptions{} }

// Projection 设置字段投影。
func (o *FindOptions) Projection(q Query) *FindOptions {
	o.projection = &q
	return o
}

// Limit 设置最大返回条数。
func (o *FindOptions) Limit(n int64) *FindOptions {
	o.limit = &n
	return o
}

// Skip 设置跳过条数。
func (o *FindOptions) Skip(n int64) *FindOptions {
	o.skip = &n
	return o
}

// Sort 设置排序模板。
func (o *FindOptions) Sort(sort string) *FindOptions {
	o.sort = &sort
	return o
}

// Hint 设置索引提示：以 "{" 开头时按索引键模板解析，否则视为索引名。
func (o *FindOptions) Hint(hint string) *FindOptions {
	o.hint = &hint
	return o
}

// FindAndModifyOptions FindAndModify 的选项。
type FindAndModifyOptions struct {
	projection *Query
	sort       *string
	returnNew  *bool
	upsert     *bool
}

// NewFindAndModifyOptions 创建空选项。
func NewFindAndModifyOptions() *FindAndModifyOptions { return &FindAndModifyOptions{} }

// Projection 设置返回文档的字段投影。
func (o *FindAndModifyOptions) Projection(q Query) *FindAndModifyOptions {
	o.projection = &q
	return o
}

// Sort 设置排序模板，查询匹配多条时决定修改哪一条。
func (o *FindAndModifyOptions) Sort(sort string) *FindAndModifyOptions {
	o.sort = &sort
	return o
}

// ReturnNew 为 true 时返回修改后的文档，否则返回修改前的文档。
func (o *FindAndModifyOptions) ReturnNew(v bool) *FindAndModifyOptions {
	o.returnNew = &v
	return o
}

// Upsert 为 true 时无匹配文档则插入。
func (o *FindAndModifyOptions) Upsert(v bool) *FindAndModifyOptions {
	o.upsert = &v
	return o
}

// FindAndRemoveOptions FindAndRemove 的选项。
type FindAndRemoveOptions struct {
	projection *Query
	sort       *string
}

// NewFindAndRemoveOptions 创建空选项。
func NewFindAndRemoveOptions() *FindAndRemoveOptions { return &FindAndRemoveOptions{} }

// Projection 设置返回文档的字段投影。
func (o *FindAndRemoveOptions) Projection(q Query) *FindAndRemoveOptions {
	o.projection = &q
	return o
}

// Sort 设置排序模板，查询匹配多条时决定删除哪一条。
func (o *FindAndRemoveOptions) Sort(sort string) *FindAndRemoveOptions {
	o.sort = &sort
	return o
}

// UpdateOptions Update 的选项。
type UpdateOptions struct {
	upsert *bool
	multi  *bool
}

// NewUpdateOptions 创建空选项。
func NewUpdateOptions() *UpdateOptions { return &UpdateOptions{} }

// Upsert 为 true 时无匹配文档则插入。
func (o *UpdateOptions) Upsert(v bool) *UpdateOptions {
	o.upsert = &v
	return o
}

// Multi 为 true 时修改所有匹配文档，否则只修改第一条。
func (o *UpdateOptions) Multi(v bool) *UpdateOptions {
	o.multi = &v
	return o
}

func (o *UpdateOptions) isMulti() bool {
	return o != nil && o.multi != nil && *o.multi
}

// =============================================================================
// 转换为驱动选项
// =============================================================================

// renderer 把模板渲染为驱动值，由 Client 提供。
type renderer interface {
	render(q Query) (any, error)
}

func renderSort(r renderer, sort string) (any, error) {
	return r.render(NewQuery(sort))
}

func (o *FindOneOptions) driver(r renderer) (*options.FindOneOptionsBuilder, error) {
	opts := options.FindOne()
	if o == nil {
		return opts, nil
	}
	if o.projection != nil {
		p, err := r.render(*o.projection)
		if err != nil {
			return nil, err
		}
		opts.SetProjection(p)
	}
	if o.orderBy != nil {
		s, err := renderSort(r, *o.orderBy)
		if err != nil {
			return nil, err
		}
		opts.SetSort(s)
	}
	return opts, nil
}

func (o *FindOptions) driver(r renderer) (*options.FindOptionsBuilder, error) {
	opts := options.Find()
	if o == nil {
		return opts, nil
	}
	if o.projection != nil {
		p, err := r.render(*o.projection)
		if err != nil {
			return nil, err
		}
		opts.SetProjection(p)
	}
	if o.limit != nil {
		opts.SetLimit(*o.limit)
	}
	if o.skip != nil {
		opts.SetSkip(*o.skip)
	}
	if o.sort != nil {
		s, err := renderSort(r, *o.sort)
		if err != nil {
			return nil, err
		}
		opts.SetSort(s)
	}
	if o.hint != nil {
		h, err := renderHint(r, *o.hint)
		if err != nil {
			return nil, err
		}
		opts.SetHint(h)
	}
	return opts, nil
}

// countDriver 把 FindOptions 中对计数有意义的字段（limit、skip、hint）转换为计数选项。
func (o *FindOptions) countDriver(r renderer) (*options.CountOptionsBuilder, error) {
	opts := options.Count()
	if o == nil {
		return opts, nil
	}
	if o.limit != nil {
		opts.SetLimit(*o.limit)
	}
	if o.skip != nil {
		opts.SetSkip(*o.skip)
	}
	if o.hint != nil {
		h, err := renderHint(r, *o.hint)
		if err != nil {
			return nil, err
		}
		opts.SetHint(h)
	}
	return opts, nil
}

func renderHint(r renderer, hint string) (any, error) {
	if strings.HasPrefix(strings.TrimSpace(hint), "{") {
		return r.render(NewQuery(hint))
	}
	return hint, nil
}

func (o *FindAndModifyOptions) driver(r renderer) (*options.FindOneAndUpdateOptionsBuilder, error) {
	opts := options.FindOneAndUpdate()
	if o == nil {
		return opts, nil
	}
	if o.projection != nil {
		p, err := r.render(*o.projection)
		if err != nil {
			return nil, err
		}
		opts.SetProjection(p)
	}
	if o.sort != nil {
		s, err := renderSort(r, *o.sort)
		if err != nil {
			return nil, err
		}
		opts.SetSort(s)
	}
	if o.returnNew != nil {
		if *o.returnNew {
			opts.SetReturnDocument(options.After)
		} else {
			opts.SetReturnDocument(options.Before)
		}
	}
	if o.upsert != nil {
		opts.SetUpsert(*o.upsert)
	}
	return opts, nil
}

func (o *FindAndRemoveOptions) driver(r renderer) (*options.FindOneAndDeleteOptionsBuilder, error) {
	opts := options.FindOneAndDelete()
	if o == nil {
		return opts, nil
	}
	if o.projection != nil {
		p, err := r.render(*o.projection)
		if err != nil {
			return nil, err
		}
		opts.SetProjection(p)
	}
	if o.sort != nil {
		s, err := renderSort(r, *o.sort)
		if err != nil {
			return nil, err
		}
		opts.SetSort(s)
	}
	return opts, nil
}

func (o *UpdateOptions) upsertValue() (bool, bool) {
	if o == nil || o.upsert == nil {
		return false, false
	}
	return *o.upsert, true
}
