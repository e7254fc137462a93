package xjson

import (
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var (
	stdTimeType  = reflect.TypeOf(time.Time{})
	stdBytesType = reflect.TypeOf([]byte(nil))
)

// Decode 把文档树映射到 target 指向的值。
//
// doc 先被深拷贝（调用方的树不会被修改），再经过 Normalize，最后由 mapstructure
// 写入 target。结构体按与 Encode 相同的字段表解码：嵌入结构体展开，nil 嵌入指针被分配，
// 标签为 "-" 的字段不读取；字段名先精确匹配，再不区分大小写匹配。
//
// 设计决策: 损坏的时间戳只影响所在节点。类型化字段保持零值，泛型节点保留原映射，
// 其余字段照常解码；所有 *TimestampError 通过 errors.Join 返回，
// 可用 errors.Is(err, ErrMalformedTimestamp) 判断。
func (c *Codec) Decode(doc, target any) error {
	if target == nil {
		return ErrNilTarget
	}
	if rv := reflect.ValueOf(target); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNonPointerTarget
	}

	tree, tsErr := c.Normalize(deepCopy(doc))

	s := &decodeState{c: c}
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.opts.DecodeHooks)+3)
	hooks = append(hooks, mapstructure.DecodeHookFuncValue(s.timestampHook), base64Hook)
	hooks = append(hooks, c.opts.DecodeHooks...)
	hooks = append(hooks, mapstructure.DecodeHookFuncValue(s.structHook))
	s.hook = mapstructure.ComposeDecodeHookFunc(hooks...)

	if err := s.decode(tree, target); err != nil {
		s.fieldErrs = append(s.fieldErrs, err)
	}
	if len(s.fieldErrs) > 0 {
		return errors.Join(fmt.Errorf("%w: %w", ErrDecode, errors.Join(s.fieldErrs...)), tsErr)
	}
	return errors.Join(tsErr, errors.Join(s.tsErrs...))
}

// decodeState 单次 Decode 的状态。
type decodeState struct {
	c         *Codec
	hook      mapstructure.DecodeHookFunc
	tsErrs    []error
	fieldErrs []error
}

func (s *decodeState) decode(input, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: s.hook,
		TagName:    s.c.opts.TagName,
		Result:     target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// timestampHook 处理写入 time.Time 的值：字符串按时间戳规则解析，
// Normalize 未能替换的 $date 映射（已报告过）解码为零值。
func (s *decodeState) timestampHook(from, to reflect.Value) (any, error) {
	if !from.IsValid() {
		return nil, nil
	}
	if to.Type() != stdTimeType {
		return from.Interface(), nil
	}
	switch v := from.Interface().(type) {
	case string:
		t, err := ParseTimestamp(v, s.c.opts.Location)
		if err != nil {
			s.tsErrs = append(s.tsErrs, &TimestampError{Value: v, Err: err})
			return time.Time{}, nil
		}
		return t, nil
	case map[string]any:
		if _, ok := IsTimestampDoc(v); ok {
			return time.Time{}, nil
		}
	}
	return from.Interface(), nil
}

// structHook 按字段表把映射写入结构体，返回构造好的结构体值，
// mapstructure 随后原样赋值。字段错误记录后继续解码其余字段。
func (s *decodeState) structHook(from, to reflect.Value) (any, error) {
	if !from.IsValid() {
		return nil, nil
	}
	m, ok := from.Interface().(map[string]any)
	if !ok || !s.c.fields.plainStruct(to.Type()) {
		return from.Interface(), nil
	}

	out := reflect.New(to.Type()).Elem()
	if to.CanInterface() {
		out.Set(to)
	}
	var folded map[string]string
	for _, f := range s.c.fields.fields(to.Type()) {
		raw, ok := m[f.name]
		if !ok {
			if folded == nil {
				folded = foldKeys(m)
			}
			key, found := folded[strings.ToLower(f.name)]
			if !found {
				continue
			}
			raw = m[key]
		}
		if raw == nil {
			continue
		}
		fv, ok := decodeField(out, f.index)
		if !ok {
			continue
		}
		if err := s.decode(raw, fv.Addr().Interface()); err != nil {
			s.fieldErrs = append(s.fieldErrs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	return out.Interface(), nil
}

// foldKeys 建立小写键到原键的索引，多个键折叠到同一小写形式时取字典序最小者。
func foldKeys(m map[string]any) map[string]string {
	keys := slices.Sorted(maps.Keys(m))
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		lk := strings.ToLower(k)
		if _, ok := out[lk]; !ok {
			out[lk] = k
		}
	}
	return out
}

// base64Hook 与 encoding/json 保持一致：[]byte 字段接受 base64 字符串。
func base64Hook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != stdBytesType {
		return data, nil
	}
	b, err := base64.StdEncoding.DecodeString(reflect.ValueOf(data).String())
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	return b, nil
}

// deepCopy 复制树中的映射和序列，*OrderedMap 转为 map[string]any。
func deepCopy(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = deepCopy(child)
		}
		return out
	case *OrderedMap:
		if node == nil {
			return nil
		}
		out := make(map[string]any, node.Len())
		for k, child := range node.All() {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}
