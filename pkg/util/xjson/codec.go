package xjson

import (
	"time"
)

// Codec 在 Go 值与 JSON 兼容的文档树之间转换。
//
// 文档树由 map[string]any / *OrderedMap、[]any 和标量组成，时间戳编码为
// {"$date": "2006-01-02T15:04:05.000-0700"}。
//
// Codec 构造后不可变，可被多个 goroutine 并发使用。
type Codec struct {
	opts   *Options
	fields *fieldCache
	enc    encoder
}

// New 创建 Codec。
func New(opts ...Option) *Codec {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	fc := newFieldCache(o)
	return &Codec{opts: o, fields: fc, enc: encoder{opts: o, plan: fc}}
}

var defaultCodec = New()

// Default 返回默认配置（UTC、json 标签、MapHash）的 Codec。
func Default() *Codec {
	return defaultCodec
}

// Location 返回时间戳使用的时区。
func (c *Codec) Location() *time.Location {
	return c.opts.Location
}

// MapKind 返回 Encode 产生的映射容器族。
func (c *Codec) MapKind() MapKind {
	return c.opts.MapKind
}

// Encode 把 v 展开为文档树。
//
// time.Time 总是以标准格式编码为 $date 映射；结构体只读取导出字段（含未导出嵌入结构体的导出字段），
// 不调用任何方法；map 的 nil 键编码为空字符串，与已有的 "" 键冲突时返回 ErrKeyCollision。
func (c *Codec) Encode(v any) (any, error) {
	return c.enc.encode(v)
}

// Clone 先编码 src 再解码到 target，用于深拷贝或类型转换。
func (c *Codec) Clone(src, target any) error {
	tree, err := c.Encode(src)
	if err != nil {
		return err
	}
	return c.Decode(tree, target)
}
