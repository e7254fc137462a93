package xjson

import (
	"encoding/json"
	"math"
)

// NarrowNumber 把 JSON 数字收窄到 int32 → int64 → float64 中第一个能精确表示它的类型。
// 三者都无法表示时返回原始字符串。
func NarrowNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i)
		}
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// narrowNumbers 原地替换树中所有 json.Number。
func narrowNumbers(v any) any {
	switch node := v.(type) {
	case json.Number:
		return NarrowNumber(node)
	case map[string]any:
		for k, child := range node {
			node[k] = narrowNumbers(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = narrowNumbers(child)
		}
		return node
	default:
		return v
	}
}
