package xjson

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	goreflect "github.com/goccy/go-reflect"
)

var (
	timeType       = goreflect.TypeOf(time.Time{})
	orderedMapType = goreflect.TypeOf((*OrderedMap)(nil))
)

// encoder 将任意 Go 值展开为文档树。
type encoder struct {
	opts *Options
	plan *fieldCache
}

func (e *encoder) encode(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return e.value(goreflect.ValueOf(v))
}

func (e *encoder) value(r goreflect.Value) (any, error) {
	for r.Kind() == reflect.Interface || r.Kind() == reflect.Pointer {
		if r.IsNil() {
			return nil, nil
		}
		if r.Type() == orderedMapType {
			return e.orderedMap(r.Interface().(*OrderedMap))
		}
		r = r.Elem()
	}
	if r.Kind() == reflect.Invalid {
		return nil, nil
	}

	typ := r.Type()
	if typ == timeType {
		return e.timestamp(r.Interface().(time.Time)), nil
	}
	if _, ok := e.opts.LeafTypes[typ]; ok {
		return r.Interface(), nil
	}

	switch r.Kind() {
	case reflect.Struct:
		b := NewMap(e.opts.MapKind, r.NumField())
		if err := e.fields(r, b); err != nil {
			return nil, err
		}
		return b.Build(), nil
	case reflect.Map:
		if r.IsNil() {
			return nil, nil
		}
		return e.mapValue(r)
	case reflect.Slice:
		if r.IsNil() {
			return nil, nil
		}
		return e.list(r)
	case reflect.Array:
		return e.list(r)
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ.String())
	default:
		return r.Interface(), nil
	}
}

func (e *encoder) timestamp(t time.Time) any {
	b := NewMap(e.opts.MapKind, 1)
	b.Set(TimestampKey, FormatTimestamp(t, e.opts.Location))
	return b.Build()
}

// fields 按字段表把结构体字段写入 b，嵌入结构体的字段已展开到同一层。
func (e *encoder) fields(r goreflect.Value, b MapBuilder) error {
	for _, f := range e.plan.fields(goreflect.ToReflectType(r.Type())) {
		fv, ok := encodeField(r, f.index)
		if !ok {
			continue
		}
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		v, err := e.value(fv)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		b.Set(f.name, v)
	}
	return nil
}

func (e *encoder) mapValue(r goreflect.Value) (any, error) {
	type entry struct {
		key string
		val goreflect.Value
	}
	keys := r.MapKeys()
	entries := make([]entry, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		key := mapKeyString(k)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrKeyCollision, key)
		}
		seen[key] = struct{}{}
		entries = append(entries, entry{key: key, val: r.MapIndex(k)})
	}
	if e.opts.MapKind != MapHash {
		slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })
	}

	b := NewMap(e.opts.MapKind, len(entries))
	for _, en := range entries {
		v, err := e.value(en.val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", en.key, err)
		}
		b.Set(en.key, v)
	}
	return b.Build(), nil
}

func (e *encoder) orderedMap(m *OrderedMap) (any, error) {
	b := NewMap(e.opts.MapKind, m.Len())
	for k, v := range m.All() {
		ev, err := e.encode(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		b.Set(k, ev)
	}
	return b.Build(), nil
}

func (e *encoder) list(r goreflect.Value) (any, error) {
	n := r.Len()
	out := make([]any, n)
	for i := range n {
		v, err := e.value(r.Index(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// mapKeyString 把 map 键转换为字符串。nil 接口或 nil 指针键编码为空字符串。
func mapKeyString(k goreflect.Value) string {
	for k.Kind() == reflect.Interface || k.Kind() == reflect.Pointer {
		if k.IsNil() {
			return ""
		}
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func hasTagOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// isEmptyValue 判断 omitempty 字段是否为空。数组按零值判断（如全零的 ObjectID），
// 实现 IsZero() bool 的类型（如 time.Time）以其结果为准。
func isEmptyValue(v goreflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	if z, ok := v.Interface().(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return v.IsZero()
}
