package xjson

import (
	"errors"
	"strconv"
)

// Normalize 对文档树做后序遍历，把每个恰好为 {"$date": <string>} 的映射替换为 time.Time。
//
// 映射原地修改，序列按原顺序重建，返回值为处理后的根节点。
// 无法解析的时间戳映射保持原样，对应的 *TimestampError 通过 errors.Join 汇总返回，
// 其余节点照常处理。重复调用得到相同的树。
func (c *Codec) Normalize(tree any) (any, error) {
	var errs []error
	out := c.normalize(tree, "", &errs)
	return out, errors.Join(errs...)
}

func (c *Codec) normalize(v any, path string, errs *[]error) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = c.normalize(child, childPath(path, k), errs)
		}
		return c.collapseTimestamp(node, path, errs)
	case *OrderedMap:
		if node == nil {
			return v
		}
		for _, k := range node.keys {
			node.values[k] = c.normalize(node.values[k], childPath(path, k), errs)
		}
		return c.collapseTimestamp(node, path, errs)
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = c.normalize(child, path+"["+strconv.Itoa(i)+"]", errs)
		}
		return out
	default:
		return v
	}
}

func (c *Codec) collapseTimestamp(node any, path string, errs *[]error) any {
	s, ok := IsTimestampDoc(node)
	if !ok {
		return node
	}
	t, err := ParseTimestamp(s, c.opts.Location)
	if err != nil {
		*errs = append(*errs, &TimestampError{Path: path, Value: s, Err: err})
		return node
	}
	return t
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
