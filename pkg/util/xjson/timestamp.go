package xjson

import (
	"errors"
	"strings"
	"time"
)

const (
	// TimestampKey 时间戳映射的保留键。
	TimestampKey = "$date"

	// TimestampLayout 标准时间戳格式（yyyy-MM-ddTHH:mm:ss.SSS±HHMM）。
	TimestampLayout = "2006-01-02T15:04:05.000-0700"

	// parseLayout 解析时省略毫秒：time.Parse 允许秒后紧跟小数部分。
	parseLayout = "2006-01-02T15:04:05-0700"

	// colonOffsetLayout 兼容 RFC 3339 的 ±HH:MM 偏移。
	colonOffsetLayout = "2006-01-02T15:04:05-07:00"

	// legacySeparatorIndex 旧格式 ss:SSS 中毫秒分隔符的位置。
	legacySeparatorIndex = len("2006-01-02T15:04:05")
)

var errEmptyTimestamp = errors.New("empty timestamp")

// FormatTimestamp 按标准格式输出时间戳，loc 为 nil 时使用 UTC。
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

// ParseTimestamp 解析时间戳字符串，结果转换到 loc（nil 时为 UTC）。
//
// 支持的输入：
//   - 2020-01-02T03:04:05.006+0000（标准格式）
//   - 2020-01-02T03:04:05:006+0000（旧格式，毫秒前为冒号）
//   - 2020-01-02T03:04:05.006Z（Z 后缀视为 +0000）
//   - 2020-01-02T03:04:05.006+08:00（RFC 3339 偏移）
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTimestamp
	}
	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1] + "+0000"
	}
	if len(s) > legacySeparatorIndex && s[legacySeparatorIndex] == ':' {
		s = s[:legacySeparatorIndex] + "." + s[legacySeparatorIndex+1:]
	}

	t, err := time.Parse(parseLayout, s)
	if err != nil {
		var colonErr error
		t, colonErr = time.Parse(colonOffsetLayout, s)
		if colonErr != nil {
			return time.Time{}, err
		}
	}
	return t.In(loc), nil
}

// IsTimestampDoc 判断 v 是否为时间戳映射，即只含 "$date" 一个键且值为字符串。
// 返回 $date 的字符串值。
func IsTimestampDoc(v any) (string, bool) {
	switch m := v.(type) {
	case map[string]any:
		if len(m) != 1 {
			return "", false
		}
		s, ok := m[TimestampKey].(string)
		return s, ok
	case *OrderedMap:
		if m == nil || m.Len() != 1 {
			return "", false
		}
		raw, _ := m.Get(TimestampKey)
		s, ok := raw.(string)
		return s, ok
	default:
		return "", false
	}
}
