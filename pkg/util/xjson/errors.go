package xjson

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTimestamp 表示 $date 值无法按任何支持的格式解析。
	ErrMalformedTimestamp = errors.New("xjson: malformed timestamp")

	// ErrUnsupportedType 表示值的类型无法编码为文档树（chan、func、complex 等）。
	ErrUnsupportedType = errors.New("xjson: unsupported type")

	// ErrKeyCollision 表示两个不同的 map 键转换为同一个字符串键，如 nil 指针键与 "" 键。
	ErrKeyCollision = errors.New("xjson: map key collision")

	// ErrNilTarget 表示 Decode 的目标为 nil。
	ErrNilTarget = errors.New("xjson: nil target")

	// ErrNonPointerTarget 表示 Decode 的目标不是指针。
	ErrNonPointerTarget = errors.New("xjson: target must be a non-nil pointer")

	// ErrDecode 表示文档树无法映射到目标类型。
	ErrDecode = errors.New("xjson: decode failed")

	// ErrMarshal 表示 JSON 序列化失败。
	ErrMarshal = errors.New("xjson: marshal failed")

	// ErrUnmarshal 表示 JSON 反序列化失败。
	ErrUnmarshal = errors.New("xjson: unmarshal failed")
)

// TimestampError 描述单个时间戳节点的解析失败。
type TimestampError struct {
	// Path 节点在文档树中的位置，如 "orders[2].createdAt"。根节点为空字符串。
	Path string
	// Value 原始 $date 字符串。
	Value string
	// Err 底层解析错误。
	Err error
}

func (e *TimestampError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v %q: %v", ErrMalformedTimestamp, e.Value, e.Err)
	}
	return fmt.Sprintf("%v at %s %q: %v", ErrMalformedTimestamp, e.Path, e.Value, e.Err)
}

// Unwrap 同时暴露 ErrMalformedTimestamp 和底层解析错误。
func (e *TimestampError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedTimestamp}
	}
	return []error{ErrMalformedTimestamp, e.Err}
}
