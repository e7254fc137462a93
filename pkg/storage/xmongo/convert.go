package xmongo

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/omeyang/xdocstore/pkg/util/xjson"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	idField = "_id"
	oidKey  = "$oid"
	longKey = "$numberLong"
	dateKey = xjson.TimestampKey
	bsonTag = "bson"
)

var objectIDType = reflect.TypeOf(bson.ObjectID{})

// NewCodec 返回与驱动约定一致的 Codec：读取 bson 标签，无标签字段名转小写，
// 映射保留字段顺序，驱动类型（ObjectID、Decimal128 等）原样保留。
// loc 为 nil 时使用 UTC。
func NewCodec(loc *time.Location) *xjson.Codec {
	return xjson.New(
		xjson.WithLocation(loc),
		xjson.WithTagName(bsonTag),
		xjson.WithFieldNameFunc(strings.ToLower),
		xjson.WithMapKind(xjson.MapOrdered),
		xjson.WithLeafTypes(
			bson.ObjectID{}, bson.Decimal128{}, bson.Binary{}, bson.Regex{},
			bson.DateTime(0), bson.Timestamp{}, bson.D{}, bson.Raw(nil),
			bson.MinKey{}, bson.MaxKey{}, bson.JavaScript(""),
		),
		xjson.WithDecodeHooks(objectIDHook),
	)
}

// objectIDHook 允许 string 字段接收 ObjectID（十六进制），以及 ObjectID 字段接收十六进制字符串。
func objectIDHook(from, to reflect.Type, data any) (any, error) {
	switch {
	case from == objectIDType && to.Kind() == reflect.String:
		return data.(bson.ObjectID).Hex(), nil
	case from.Kind() == reflect.String && to == objectIDType:
		return bson.ObjectIDFromHex(reflect.ValueOf(data).String())
	default:
		return data, nil
	}
}

// converter 在 Codec 文档树与驱动值之间转换。
type converter struct {
	codec *xjson.Codec
}

// value 编码任意 Go 值并转换为驱动值，用于模板参数。
func (cv converter) value(v any) (any, error) {
	tree, err := cv.codec.Encode(v)
	if err != nil {
		return nil, err
	}
	return cv.toBSON(tree)
}

// document 编码 v 并要求结果是文档。
func (cv converter) document(v any) (bson.D, error) {
	out, err := cv.value(v)
	if err != nil {
		return nil, err
	}
	d, ok := out.(bson.D)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrInvalidDocument, v)
	}
	return d, nil
}

// toBSON 把文档树转换为驱动值：映射转 bson.D（map[string]any 按键排序，_id 在前），
// 序列转 bson.A，$date/$oid/$numberLong 单键映射转对应的驱动类型。
func (cv converter) toBSON(v any) (any, error) {
	switch node := v.(type) {
	case *xjson.OrderedMap:
		if node == nil {
			return nil, nil
		}
		if node.Len() == 1 {
			key := node.Keys()[0]
			raw, _ := node.Get(key)
			if out, ok, err := extendedValue(key, raw, cv.codec.Location()); ok || err != nil {
				return out, err
			}
		}
		d := make(bson.D, 0, node.Len())
		for k, child := range node.All() {
			bv, err := cv.toBSON(child)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			d = append(d, bson.E{Key: k, Value: bv})
		}
		return d, nil
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sortKeys(keys)
		m := xjson.NewOrderedMap(len(keys))
		for _, k := range keys {
			m.Set(k, node[k])
		}
		return cv.toBSON(m)
	case []any:
		a := make(bson.A, len(node))
		for i, child := range node {
			bv, err := cv.toBSON(child)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			a[i] = bv
		}
		return a, nil
	case bson.D:
		d := make(bson.D, 0, len(node))
		for _, e := range node {
			bv, err := cv.value(e.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.Key, err)
			}
			d = append(d, bson.E{Key: e.Key, Value: bv})
		}
		return d, nil
	default:
		return v, nil
	}
}

// sortKeys 按字典序排序，_id 固定在最前。
func sortKeys(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == idField:
			return -1
		case b == idField:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}

// extendedValue 识别扩展 JSON 单键映射。ok 为 false 表示 key 不是扩展键或值类型不匹配。
func extendedValue(key string, raw any, loc *time.Location) (out any, ok bool, err error) {
	switch key {
	case dateKey:
		switch v := raw.(type) {
		case string:
			t, perr := xjson.ParseTimestamp(v, loc)
			if perr != nil {
				return nil, true, &xjson.TimestampError{Value: v, Err: perr}
			}
			return t, true, nil
		case int32:
			return time.UnixMilli(int64(v)).In(loc), true, nil
		case int64:
			return time.UnixMilli(v).In(loc), true, nil
		}
	case oidKey:
		if s, isStr := raw.(string); isStr {
			id, perr := bson.ObjectIDFromHex(s)
			if perr != nil {
				return nil, true, fmt.Errorf("%s %q: %w", oidKey, s, perr)
			}
			return id, true, nil
		}
	case longKey:
		if s, isStr := raw.(string); isStr {
			n, perr := strconv.ParseInt(s, 10, 64)
			if perr != nil {
				return nil, true, fmt.Errorf("%s %q: %w", longKey, s, perr)
			}
			return n, true, nil
		}
	}
	return nil, false, nil
}

// fromBSON 把驱动解码出的值转换为 Codec 文档树：bson.D/bson.M 转 map[string]any，
// bson.A 转 []any，bson.DateTime 转 loc 时区的 time.Time。
func fromBSON(v any, loc *time.Location) any {
	switch node := v.(type) {
	case bson.D:
		m := make(map[string]any, len(node))
		for _, e := range node {
			m[e.Key] = fromBSON(e.Value, loc)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(node))
		for k, child := range node {
			m[k] = fromBSON(child, loc)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(node))
		for k, child := range node {
			m[k] = fromBSON(child, loc)
		}
		return m
	case bson.A:
		return fromBSONList(node, loc)
	case []any:
		return fromBSONList(node, loc)
	case bson.DateTime:
		return node.Time().In(loc)
	case time.Time:
		return node.In(loc)
	default:
		return v
	}
}

func fromBSONList(list []any, loc *time.Location) []any {
	out := make([]any, len(list))
	for i, child := range list {
		out[i] = fromBSON(child, loc)
	}
	return out
}
