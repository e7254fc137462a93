package xjson

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strconv"
)

// MapKind 选择 Encode 产生的映射容器族。
type MapKind int

const (
	// MapHash 产生 map[string]any，不保证键顺序。
	MapHash MapKind = iota
	// MapOrdered 产生 *OrderedMap：结构体字段按声明顺序，map 键按字典序。
	MapOrdered
	// MapSorted 产生 *OrderedMap，所有键按字典序。
	MapSorted
)

// String 返回 MapKind 的可读名称。
func (k MapKind) String() string {
	switch k {
	case MapHash:
		return "hash"
	case MapOrdered:
		return "ordered"
	case MapSorted:
		return "sorted"
	default:
		return "MapKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MapBuilder 逐项构造映射容器。
type MapBuilder interface {
	// Set 写入键值，重复的键覆盖旧值。
	Set(key string, value any)
	// Build 返回构造完成的容器。
	Build() any
}

// mapFactories 容器族工厂表，以 MapKind 为键。
var mapFactories = map[MapKind]func(size int) MapBuilder{
	MapHash: func(size int) MapBuilder {
		return hashBuilder(make(map[string]any, size))
	},
	MapOrdered: func(size int) MapBuilder {
		return NewOrderedMap(size)
	},
	MapSorted: func(size int) MapBuilder {
		return &sortedBuilder{m: NewOrderedMap(size)}
	},
}

// NewMap 按容器族创建 MapBuilder。未知的 kind 回退为 MapHash。
func NewMap(kind MapKind, size int) MapBuilder {
	factory, ok := mapFactories[kind]
	if !ok {
		factory = mapFactories[MapHash]
	}
	return factory(size)
}

type hashBuilder map[string]any

func (b hashBuilder) Set(key string, value any) { b[key] = value }
func (b hashBuilder) Build() any                { return map[string]any(b) }

type sortedBuilder struct {
	m *OrderedMap
}

func (b *sortedBuilder) Set(key string, value any) { b.m.Set(key, value) }

func (b *sortedBuilder) Build() any {
	b.m.SortKeys()
	return b.m
}

// =============================================================================
// OrderedMap
// =============================================================================

// OrderedMap 保留插入顺序的字符串键映射。
// 非并发安全。
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap 创建容量为 size 的 OrderedMap。
func NewOrderedMap(size int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Set 写入键值。已存在的键保持原位置，只替换值。
func (m *OrderedMap) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get 读取键值。
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete 删除键。
func (m *OrderedMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Len 返回键数量。
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys 返回按顺序排列的键副本。
func (m *OrderedMap) Keys() []string {
	return slices.Clone(m.keys)
}

// All 按顺序迭代键值对。
func (m *OrderedMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// SortKeys 按字典序重排键。
func (m *OrderedMap) SortKeys() {
	slices.Sort(m.keys)
}

// Build 实现 MapBuilder。
func (m *OrderedMap) Build() any { return m }

// ToMap 返回浅拷贝的 map[string]any。
func (m *OrderedMap) ToMap() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

// MarshalJSON 按键顺序输出 JSON 对象。
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
