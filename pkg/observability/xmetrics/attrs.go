package xmetrics

import "time"

// String 字符串属性。
func String(key, value string) Attr { return Attr{Key: key, Value: value} }

// Bool 布尔属性。
func Bool(key string, value bool) Attr { return Attr{Key: key, Value: value} }

// Int 整数属性。
func Int(key string, value int) Attr { return Attr{Key: key, Value: value} }

// Int64 int64 属性。
func Int64(key string, value int64) Attr { return Attr{Key: key, Value: value} }

// Float64 float64 属性。
func Float64(key string, value float64) Attr { return Attr{Key: key, Value: value} }

// Duration 时间间隔属性，OTel 中记录为纳秒。
func Duration(key string, value time.Duration) Attr { return Attr{Key: key, Value: value} }

// Any 任意类型属性，OTel 中按 fmt.Sprint 记录。
func Any(key string, value any) Attr { return Attr{Key: key, Value: value} }

// 数据库语义约定的属性键。
const (
	AttrDBSystem     = "db.system"
	AttrDBName       = "db.name"
	AttrDBCollection = "db.collection"
)

// DB 返回数据库调用的标准属性。空值被省略。
func DB(system, name, collection string) []Attr {
	attrs := make([]Attr, 0, 3)
	attrs = append(attrs, String(AttrDBSystem, system))
	if name != "" {
		attrs = append(attrs, String(AttrDBName, name))
	}
	if collection != "" {
		attrs = append(attrs, String(AttrDBCollection, collection))
	}
	return attrs
}
