package xjson

import (
	"time"

	goreflect "github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
)

// DefaultTagName 默认读取的结构体标签。
const DefaultTagName = "json"

// Options 定义 Codec 的配置选项。
type Options struct {
	// Location 时间戳格式化和解码结果使用的时区，默认为 UTC。
	Location *time.Location

	// TagName 字段映射读取的结构体标签，默认为 "json"。
	TagName string

	// FieldNameFunc 无标签字段的命名函数，默认保持字段名不变。
	FieldNameFunc func(string) string

	// MapKind Encode 产生的映射容器族，默认为 MapHash。
	MapKind MapKind

	// LeafTypes 原样保留、不做结构展开的类型集合。
	LeafTypes map[goreflect.Type]struct{}

	// DecodeHooks 追加到 mapstructure 的解码钩子，在内置时间戳钩子之后执行。
	DecodeHooks []mapstructure.DecodeHookFunc
}

// Option 定义配置 Codec 的函数类型。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Location:      time.UTC,
		TagName:       DefaultTagName,
		FieldNameFunc: func(s string) string { return s },
		MapKind:       MapHash,
		LeafTypes: map[goreflect.Type]struct{}{
			goreflect.TypeOf([]byte(nil)): {},
		},
	}
}

// WithLocation 设置时间戳时区。nil 被忽略。
func WithLocation(loc *time.Location) Option {
	return func(o *Options) {
		if loc != nil {
			o.Location = loc
		}
	}
}

// WithTagName 设置结构体标签名。空字符串被忽略。
func WithTagName(tag string) Option {
	return func(o *Options) {
		if tag != "" {
			o.TagName = tag
		}
	}
}

// WithFieldNameFunc 设置无标签字段的命名函数。nil 被忽略。
func WithFieldNameFunc(fn func(string) string) Option {
	return func(o *Options) {
		if fn != nil {
			o.FieldNameFunc = fn
		}
	}
}

// WithMapKind 设置 Encode 产生的映射容器族。
func WithMapKind(kind MapKind) Option {
	return func(o *Options) {
		o.MapKind = kind
	}
}

// WithLeafTypes 声明原样保留的类型，参数为该类型的任意样例值。
//
//	xjson.New(xjson.WithLeafTypes(bson.ObjectID{}, bson.Decimal128{}))
func WithLeafTypes(samples ...any) Option {
	return func(o *Options) {
		for _, s := range samples {
			if s == nil {
				continue
			}
			o.LeafTypes[goreflect.TypeOf(s)] = struct{}{}
		}
	}
}

// WithDecodeHooks 追加 mapstructure 解码钩子。
func WithDecodeHooks(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(o *Options) {
		for _, h := range hooks {
			if h != nil {
				o.DecodeHooks = append(o.DecodeHooks, h)
			}
		}
	}
}
