package xmongo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// defaultIndexOptions 未指定索引选项时使用的默认值。
const defaultIndexOptions = "{background: true}"

// Collection 集合级操作句柄，文档类型为 T。
//
// T 通常是带 bson 标签的结构体（无标签字段名转小写），也可以是 map[string]any。
// 所有操作返回显式的 (value, error)；需要"失败即返回空值并记录日志"语义时使用 Degraded。
type Collection[T any] struct {
	client *Client
	name   string
}

// NewCollection 创建集合句柄。name 为空时使用 T 的类型名（指针取元素类型）。
func NewCollection[T any](c *Client, name string) *Collection[T] {
	if name == "" {
		name = shapeName[T]()
	}
	return &Collection[T]{client: c, name: name}
}

func shapeName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Name 返回集合名。
func (c *Collection[T]) Name() string { return c.name }

// Client 返回所属客户端。
func (c *Collection[T]) Client() *Client { return c.client }

func (c *Collection[T]) run(ctx context.Context, op string, q Query, fn func(ctx context.Context, coll collectionOperations) error) error {
	if c == nil || c.client == nil {
		return ErrNilClient
	}
	if c.name == "" {
		return ErrNoCollectionName
	}
	return c.client.run(ctx, op, c.name, q, func(ctx context.Context, s *session) error {
		return fn(ctx, s.db.Collection(c.name))
	})
}

func (c *Collection[T]) wrap(op string, err error) error {
	return c.client.wrap(op, c.name, err)
}

// =============================================================================
// 计数
// =============================================================================

// Count 返回匹配文档数。零值 Query 匹配所有文档。
func (c *Collection[T]) Count(ctx context.Context, q Query) (n int64, err error) {
	err = c.run(ctx, "count", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		n, err = coll.CountDocuments(ctx, filter)
		return c.wrap("count", err)
	})
	return n, err
}

// Exists 判断是否存在匹配文档。
func (c *Collection[T]) Exists(ctx context.Context, q Query) (exists bool, err error) {
	err = c.run(ctx, "exists", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		n, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		exists = n > 0
		return c.wrap("exists", err)
	})
	return exists, err
}

// CountFind 返回按 FindOptions 的 limit/skip/hint 计算的匹配数，即同样条件下 Find 返回的条数。
func (c *Collection[T]) CountFind(ctx context.Context, q Query, o *FindOptions) (n int64, err error) {
	err = c.run(ctx, "count_find", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		opts, err := o.countDriver(c.client)
		if err != nil {
			return err
		}
		n, err = coll.CountDocuments(ctx, filter, opts)
		return c.wrap("count_find", err)
	})
	return n, err
}

// CountPosition 返回 _id 为 id 的文档在按 sort 排序的查询结果中的位置（从 0 开始），
// 不在结果中时返回 -1。
//
// 实现为只投影 _id 的线性扫描，耗时与结果集大小成正比。
func (c *Collection[T]) CountPosition(ctx context.Context, id any, q Query, sort string) (int64, error) {
	pos := int64(-1)
	err := c.run(ctx, "count_position", q, func(ctx context.Context, coll collectionOperations) (err error) {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		want, err := c.client.conv.value(id)
		if err != nil {
			return err
		}
		opts := options.Find().SetProjection(bson.D{{Key: idField, Value: 1}})
		if strings.TrimSpace(sort) != "" {
			s, err := renderSort(c.client, sort)
			if err != nil {
				return err
			}
			opts.SetSort(s)
		}

		cursor, err := coll.Find(ctx, filter, opts)
		if err != nil {
			return c.wrap("count_position", err)
		}
		defer func() {
			if cerr := cursor.Close(ctx); cerr != nil {
				err = errors.Join(err, c.wrap("count_position close cursor", cerr))
			}
		}()

		for i := int64(0); cursor.Next(ctx); i++ {
			var doc bson.D
			if err := cursor.Decode(&doc); err != nil {
				return c.wrap("count_position", err)
			}
			if got, ok := lookup(doc, idField); ok && sameID(got, want) {
				pos = i
				return nil
			}
		}
		return c.wrap("count_position", cursor.Err())
	})
	if err != nil {
		return -1, err
	}
	return pos, nil
}

// =============================================================================
// 查询
// =============================================================================

// Get 按 _id 查询，不存在时返回 ErrNotFound。
func (c *Collection[T]) Get(ctx context.Context, id any) (T, error) {
	return c.findOne(ctx, "get", IDQuery(id), nil)
}

// FindOne 返回第一条匹配文档，不存在时返回 ErrNotFound。
func (c *Collection[T]) FindOne(ctx context.Context, q Query, o *FindOneOptions) (T, error) {
	return c.findOne(ctx, "find_one", q, o)
}

func (c *Collection[T]) findOne(ctx context.Context, op string, q Query, o *FindOneOptions) (doc T, err error) {
	err = c.run(ctx, op, q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		opts, err := o.driver(c.client)
		if err != nil {
			return err
		}
		return c.decodeSingle(op, coll.FindOne(ctx, filter, opts), &doc)
	})
	return doc, err
}

// Find 返回所有匹配文档。游标总是被读完并关闭，关闭错误与主结果合并返回。
// 无匹配时返回空切片。
//
// 个别文档的时间戳无法解析时，该文档的对应字段为零值，其余文档照常返回，
// 错误中可用 errors.Is(err, xjson.ErrMalformedTimestamp) 判断。
func (c *Collection[T]) Find(ctx context.Context, q Query, o *FindOptions) (docs []T, err error) {
	err = c.run(ctx, "find", q, func(ctx context.Context, coll collectionOperations) error {
		cursor, err := c.find(ctx, coll, q, o)
		if err != nil {
			return err
		}
		docs, err = cursor.All(ctx)
		return err
	})
	if docs == nil {
		docs = []T{}
	}
	return docs, err
}

// CursorFind 返回游标。调用方负责在所有路径上 Close。
func (c *Collection[T]) CursorFind(ctx context.Context, q Query, o *FindOptions) (cursor *Cursor[T], err error) {
	err = c.run(ctx, "cursor_find", q, func(ctx context.Context, coll collectionOperations) error {
		cursor, err = c.find(ctx, coll, q, o)
		return err
	})
	return cursor, err
}

func (c *Collection[T]) find(ctx context.Context, coll collectionOperations, q Query, o *FindOptions) (*Cursor[T], error) {
	filter, err := c.client.filter(q)
	if err != nil {
		return nil, err
	}
	opts, err := o.driver(c.client)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	return newCursor[T](cur, c.client, "find", c.name), nil
}

// =============================================================================
// 原子读改
// =============================================================================

// FindAndModify 原子地修改一条匹配文档并返回它（默认返回修改前的文档）。
// modifier 为更新操作符文档，例如 NewQuery("{$inc: {count: #}}", 1)。
// 无匹配且未 upsert 时返回 ErrNotFound。
func (c *Collection[T]) FindAndModify(ctx context.Context, q, modifier Query, o *FindAndModifyOptions) (doc T, err error) {
	err = c.run(ctx, "find_and_modify", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		update, err := c.client.render(modifier)
		if err != nil {
			return err
		}
		opts, err := o.driver(c.client)
		if err != nil {
			return err
		}
		return c.decodeSingle("find_and_modify", coll.FindOneAndUpdate(ctx, filter, update, opts), &doc)
	})
	return doc, err
}

// FindAndRemove 原子地删除一条匹配文档并返回它。无匹配时返回 ErrNotFound。
func (c *Collection[T]) FindAndRemove(ctx context.Context, q Query, o *FindAndRemoveOptions) (doc T, err error) {
	err = c.run(ctx, "find_and_remove", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		opts, err := o.driver(c.client)
		if err != nil {
			return err
		}
		return c.decodeSingle("find_and_remove", coll.FindOneAndDelete(ctx, filter, opts), &doc)
	})
	return doc, err
}

// =============================================================================
// 写入
// =============================================================================

// Set 按 _id upsert 一个文档（整体替换）。文档没有 _id 时直接插入，由驱动生成 _id。
// 返回是否有文档被匹配或插入。
func (c *Collection[T]) Set(ctx context.Context, doc T) (affected bool, err error) {
	err = c.run(ctx, "set", Query{}, func(ctx context.Context, coll collectionOperations) error {
		d, err := c.client.conv.document(doc)
		if err != nil {
			return err
		}
		id, ok := lookup(d, idField)
		if !ok || id == nil {
			if _, err := coll.InsertOne(ctx, d); err != nil {
				return c.wrap("set", err)
			}
			affected = true
			return nil
		}
		res, err := coll.ReplaceOne(ctx, bson.D{{Key: idField, Value: id}}, d, options.Replace().SetUpsert(true))
		if err != nil {
			return c.wrap("set", err)
		}
		affected = res.MatchedCount+res.UpsertedCount > 0
		return nil
	})
	return affected, err
}

// BulkSet 以无序批量写入按 _id upsert 多个文档，只需一次往返。
//
// 返回新插入的文档数（upsert 产生的新文档加上没有 _id 而直接插入的文档），
// 已存在文档的替换不计入。部分失败时同时返回已插入数和错误。
func (c *Collection[T]) BulkSet(ctx context.Context, docs []T) (inserted int64, err error) {
	if len(docs) == 0 {
		return 0, ErrEmptyDocs
	}
	err = c.run(ctx, "bulk_set", Query{}, func(ctx context.Context, coll collectionOperations) error {
		models := make([]mongo.WriteModel, 0, len(docs))
		for i, doc := range docs {
			d, err := c.client.conv.document(doc)
			if err != nil {
				return fmt.Errorf("xmongo bulk_set: document %d: %w", i, err)
			}
			if id, ok := lookup(d, idField); ok && id != nil {
				models = append(models, mongo.NewReplaceOneModel().
					SetFilter(bson.D{{Key: idField, Value: id}}).
					SetReplacement(d).
					SetUpsert(true))
				continue
			}
			models = append(models, mongo.NewInsertOneModel().SetDocument(d))
		}

		res, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
		if res != nil {
			inserted = res.InsertedCount + res.UpsertedCount
		}
		return c.wrap("bulk_set", err)
	})
	return inserted, err
}

// Insert 严格插入（不 upsert），返回插入文档的 _id。
// _id 冲突时返回的错误满足 errors.Is(err, ErrDuplicateKey)。
func (c *Collection[T]) Insert(ctx context.Context, doc T) (id any, err error) {
	err = c.run(ctx, "insert", Query{}, func(ctx context.Context, coll collectionOperations) error {
		d, err := c.client.conv.document(doc)
		if err != nil {
			return err
		}
		id, err = c.insert(ctx, coll, d)
		return err
	})
	return id, err
}

// InsertQuery 插入由模板渲染的文档，例如 NewQuery("{name: #, tags: []}", name)。
func (c *Collection[T]) InsertQuery(ctx context.Context, q Query) (id any, err error) {
	err = c.run(ctx, "insert", q, func(ctx context.Context, coll collectionOperations) error {
		d, err := c.client.filter(q)
		if err != nil {
			return err
		}
		id, err = c.insert(ctx, coll, d)
		return err
	})
	return id, err
}

func (c *Collection[T]) insert(ctx context.Context, coll collectionOperations, d bson.D) (any, error) {
	res, err := coll.InsertOne(ctx, d)
	if err != nil {
		return nil, c.wrap("insert", err)
	}
	return res.InsertedID, nil
}

// Update 按查询修改文档，返回匹配数加 upsert 插入数。
// 未设置 Multi(true) 时只修改第一条匹配文档。
func (c *Collection[T]) Update(ctx context.Context, q, modifier Query, o *UpdateOptions) (n int64, err error) {
	err = c.run(ctx, "update", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		update, err := c.client.render(modifier)
		if err != nil {
			return err
		}

		upsert, hasUpsert := o.upsertValue()
		var res *mongo.UpdateResult
		if o.isMulti() {
			opts := options.UpdateMany()
			if hasUpsert {
				opts.SetUpsert(upsert)
			}
			res, err = coll.UpdateMany(ctx, filter, update, opts)
		} else {
			opts := options.UpdateOne()
			if hasUpsert {
				opts.SetUpsert(upsert)
			}
			res, err = coll.UpdateOne(ctx, filter, update, opts)
		}
		if err != nil {
			return c.wrap("update", err)
		}
		n = res.MatchedCount + res.UpsertedCount
		return nil
	})
	return n, err
}

// Remove 删除所有匹配文档，返回删除数。
func (c *Collection[T]) Remove(ctx context.Context, q Query) (n int64, err error) {
	err = c.run(ctx, "remove", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		res, err := coll.DeleteMany(ctx, filter)
		if err != nil {
			return c.wrap("remove", err)
		}
		n = res.DeletedCount
		return nil
	})
	return n, err
}

// =============================================================================
// 聚合与管理
// =============================================================================

// Distinct 返回字段 key 在匹配文档中的不同取值。
func (c *Collection[T]) Distinct(ctx context.Context, key string, q Query) (values []any, err error) {
	err = c.run(ctx, "distinct", q, func(ctx context.Context, coll collectionOperations) error {
		filter, err := c.client.filter(q)
		if err != nil {
			return err
		}
		res := coll.Distinct(ctx, key, filter)
		if err := res.Err(); err != nil {
			return c.wrap("distinct", err)
		}
		var raw bson.A
		if err := res.Decode(&raw); err != nil {
			return c.wrap("distinct", err)
		}
		values = fromBSONList(raw, c.client.opts.Codec.Location())
		return nil
	})
	if values == nil {
		values = []any{}
	}
	return values, err
}

// DistinctAs 与 Distinct 相同，但把取值解码为 V。
func DistinctAs[V, T any](ctx context.Context, c *Collection[T], key string, q Query) ([]V, error) {
	values, err := c.Distinct(ctx, key, q)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, len(values))
	if err := c.client.opts.Codec.Decode(values, &out); err != nil {
		return nil, fmt.Errorf("xmongo distinct %s.%s: %w", c.client.cfg.DBName, c.name, err)
	}
	return out, nil
}

// Aggregate 按顺序执行聚合管道的各个阶段，返回全部结果。
//
//	coll.Aggregate(ctx,
//	    xmongo.NewQuery("{$match: {status: #}}", "paid"),
//	    xmongo.NewQuery("{$group: {_id: '$user', total: {$sum: '$amount'}}}"),
//	)
func (c *Collection[T]) Aggregate(ctx context.Context, stages ...Query) (docs []T, err error) {
	err = c.run(ctx, "aggregate", Query{}, func(ctx context.Context, coll collectionOperations) error {
		pipeline := make(bson.A, 0, len(stages))
		for i, stage := range stages {
			d, err := c.client.filter(stage)
			if err != nil {
				return fmt.Errorf("xmongo aggregate: stage %d: %w", i, err)
			}
			pipeline = append(pipeline, d)
		}
		cur, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return c.wrap("aggregate", err)
		}
		docs, err = newCursor[T](cur, c.client, "aggregate", c.name).All(ctx)
		return err
	})
	if docs == nil {
		docs = []T{}
	}
	return docs, err
}

// Index 创建索引并返回索引名。keys 为索引键模板（如 "{name: 1, age: -1}"），
// indexOpts 为索引选项模板（如 "{unique: true}"），为空时使用 {background: true}。
//
// 支持的选项：background（服务端 4.2 起忽略）、unique、sparse、name、
// expireAfterSeconds、partialFilterExpression、hidden。
func (c *Collection[T]) Index(ctx context.Context, keys, indexOpts string) (name string, err error) {
	err = c.run(ctx, "index", NewQuery(keys), func(ctx context.Context, coll collectionOperations) error {
		k, err := c.client.filter(NewQuery(keys))
		if err != nil {
			return fmt.Errorf("%w: keys: %w", ErrInvalidIndex, err)
		}
		if len(k) == 0 {
			return fmt.Errorf("%w: empty keys", ErrInvalidIndex)
		}
		if strings.TrimSpace(indexOpts) == "" {
			indexOpts = defaultIndexOptions
		}
		o, err := c.client.filter(NewQuery(indexOpts))
		if err != nil {
			return fmt.Errorf("%w: options: %w", ErrInvalidIndex, err)
		}
		opts, err := indexOptions(o)
		if err != nil {
			return err
		}
		name, err = coll.CreateIndex(ctx, mongo.IndexModel{Keys: k, Options: opts})
		return c.wrap("index", err)
	})
	return name, err
}

func indexOptions(d bson.D) (*options.IndexOptionsBuilder, error) {
	opts := options.Index()
	for _, e := range d {
		var ok bool
		switch e.Key {
		case "background":
			_, ok = e.Value.(bool)
		case "unique":
			var v bool
			if v, ok = e.Value.(bool); ok {
				opts.SetUnique(v)
			}
		case "sparse":
			var v bool
			if v, ok = e.Value.(bool); ok {
				opts.SetSparse(v)
			}
		case "hidden":
			var v bool
			if v, ok = e.Value.(bool); ok {
				opts.SetHidden(v)
			}
		case "name":
			var v string
			if v, ok = e.Value.(string); ok && v != "" {
				opts.SetName(v)
			}
		case "expireAfterSeconds":
			var v int32
			if v, ok = e.Value.(int32); ok && v >= 0 {
				opts.SetExpireAfterSeconds(v)
			}
		case "partialFilterExpression":
			var v bson.D
			if v, ok = e.Value.(bson.D); ok {
				opts.SetPartialFilterExpression(v)
			}
		default:
			return nil, fmt.Errorf("%w: unknown option %q", ErrInvalidIndex, e.Key)
		}
		if !ok {
			return nil, fmt.Errorf("%w: option %q has invalid value %v", ErrInvalidIndex, e.Key, e.Value)
		}
	}
	return opts, nil
}

// =============================================================================
// 辅助函数
// =============================================================================

// decodeSingle 解码单文档结果。
func (c *Collection[T]) decodeSingle(op string, res *mongo.SingleResult, target *T) error {
	var raw bson.D
	if err := res.Decode(&raw); err != nil {
		return c.wrap(op, err)
	}
	if err := c.client.decode(raw, target); err != nil {
		return fmt.Errorf("xmongo %s %s.%s: %w", op, c.client.cfg.DBName, c.name, err)
	}
	return nil
}

func lookup(d bson.D, key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// sameID 比较两个 _id。整数按值比较（int32 与 int64 视为相等），其他数字按 float64 比较。
func sameID(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ia, ok := intValue(ra); ok {
		if ib, ok := intValue(rb); ok {
			return ia == ib
		}
	}
	if fa, ok := floatValue(ra); ok {
		if fb, ok := floatValue(rb); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func intValue(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(v.Uint()), true
	default:
		return 0, false
	}
}

func floatValue(v reflect.Value) (float64, bool) {
	if i, ok := intValue(v); ok {
		return float64(i), true
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
