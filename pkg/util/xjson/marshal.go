package xjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Marshal 把 v 编码为 JSON 字节，时间戳以 $date 映射输出。
func (c *Codec) Marshal(v any) ([]byte, error) {
	tree, err := c.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	return data, nil
}

// Unmarshal 解析 JSON 字节并解码到 target。
// 数字按 NarrowNumber 收窄；$date 映射按 Decode 的规则处理。
func (c *Codec) Unmarshal(data []byte, target any) error {
	tree, err := c.Parse(data)
	if err != nil {
		return err
	}
	return c.Decode(tree, target)
}

// UnmarshalReader 从 r 读取一个 JSON 值并解码到 target，r 中不得有多余数据。
func (c *Codec) UnmarshalReader(r io.Reader, target any) error {
	tree, err := c.ParseReader(r)
	if err != nil {
		return err
	}
	return c.Decode(tree, target)
}

// UnmarshalFile 读取 path 处的 JSON 文件并解码到 target。
func (c *Codec) UnmarshalFile(path string, target any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}
	defer f.Close()
	return c.UnmarshalReader(bufio.NewReader(f), target)
}

// Parse 把 JSON 字节解析为未经 Normalize 的文档树，数字已收窄。
func (c *Codec) Parse(data []byte) (any, error) {
	return c.ParseReader(bytes.NewReader(data))
}

// ParseReader 与 Parse 相同，输入来自 r。
func (c *Codec) ParseReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrUnmarshal)
	}
	return narrowNumbers(tree), nil
}

// PrettyE 返回 v 的缩进 JSON。
func (c *Codec) PrettyE(v any) (string, error) {
	tree, err := c.Encode(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	return string(data), nil
}

// Pretty 返回 v 的缩进 JSON，用于日志和调试输出。
// 失败时返回 "<marshal error: ...>"，不会 panic。
func (c *Codec) Pretty(v any) string {
	s, err := c.PrettyE(v)
	if err != nil {
		return fmt.Sprintf("<marshal error: %v>", err)
	}
	return s
}

// =============================================================================
// 包级便捷函数（使用 Default）
// =============================================================================

// Marshal 使用默认 Codec 编码 v。
func Marshal(v any) ([]byte, error) { return defaultCodec.Marshal(v) }

// Unmarshal 使用默认 Codec 解码 data。
func Unmarshal(data []byte, target any) error { return defaultCodec.Unmarshal(data, target) }

// UnmarshalFile 使用默认 Codec 解码 JSON 文件。
func UnmarshalFile(path string, target any) error { return defaultCodec.UnmarshalFile(path, target) }

// Pretty 使用默认 Codec 输出缩进 JSON。
func Pretty(v any) string { return defaultCodec.Pretty(v) }

// PrettyE 使用默认 Codec 输出缩进 JSON，并返回错误。
func PrettyE(v any) (string, error) { return defaultCodec.PrettyE(v) }
