package xmongo

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// queryCodec 用于 Query 的哈希与字符串渲染。
var queryCodec = NewCodec(time.UTC)

// Query 不可变的模板查询：模板字符串加按位置代入的参数。
//
//	xmongo.NewQuery("{age: {$gte: #}, tags: #}", 18, []string{"vip"})
//
// 模板不在本地做语义校验，非法的查询由服务端拒绝。
type Query struct {
	template string
	params   []any
}

// NewQuery 创建查询。params 被复制。
func NewQuery(template string, params ...any) Query {
	return Query{template: template, params: slices.Clone(params)}
}

// IDQuery 按 _id 匹配，等价于 NewQuery("{_id: #}", id)。
func IDQuery(id any) Query {
	return NewQuery("{_id: #}", id)
}

// Template 返回模板字符串。
func (q Query) Template() string { return q.template }

// Params 返回参数副本。
func (q Query) Params() []any { return slices.Clone(q.params) }

// IsZero 判断是否为零值查询（空模板且无参数），零值查询匹配所有文档。
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.template) == "" && len(q.params) == 0
}

// Equal 模板相同且参数逐个深度相等。
func (q Query) Equal(other Query) bool {
	if q.template != other.template || len(q.params) != len(other.params) {
		return false
	}
	for i := range q.params {
		if !reflect.DeepEqual(q.params[i], other.params[i]) {
			return false
		}
	}
	return true
}

// Hash 返回结构哈希。Equal 的两个查询哈希相同。
func (q Query) Hash() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(q.template)
	for _, p := range q.params {
		_, _ = h.Write([]byte{0})
		if data, err := queryCodec.Marshal(p); err == nil {
			_, _ = h.Write(data)
		} else {
			_, _ = fmt.Fprintf(h, "%#v", p)
		}
	}
	return h.Sum64()
}

// String 返回占位符替换为参数 JSON 后的模板，用于日志。
func (q Query) String() string {
	var b strings.Builder
	last, i := 0, 0
	scanPlaceholders(q.template, func(offset int) {
		b.WriteString(q.template[last:offset])
		last = offset + 1
		if i >= len(q.params) {
			b.WriteByte(placeholder)
			return
		}
		if data, err := queryCodec.Marshal(q.params[i]); err == nil {
			b.Write(data)
		} else {
			fmt.Fprintf(&b, "%v", q.params[i])
		}
		i++
	})
	b.WriteString(q.template[last:])
	return b.String()
}
