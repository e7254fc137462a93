package xmongo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// placeholder 模板中的位置占位符。
const placeholder = '#'

// TemplateError 描述查询模板的语法错误。
type TemplateError struct {
	// Template 原始模板。
	Template string
	// Offset 出错位置（字节偏移）。
	Offset int
	// Msg 错误描述。
	Msg string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s (template %q)", ErrTemplateSyntax, e.Offset, e.Msg, e.Template)
}

// Unwrap 返回 ErrTemplateSyntax。
func (e *TemplateError) Unwrap() error { return ErrTemplateSyntax }

// paramFunc 把占位符参数转换为驱动值。
type paramFunc func(any) (any, error)

// templateParser 解析 mongo shell 风格的宽松 JSON 模板。
//
// 支持的语法：
//   - 键可加引号或不加引号（a、$set、a.b、_id），也可以是字符串参数占位符
//   - 单引号或双引号字符串，数字，true/false/null，嵌套对象和数组
//   - /pattern/flags 正则字面量
//   - # 位置占位符，按出现顺序消费参数；模板 "#" 表示整个文档来自参数
//   - 扩展 JSON：{$oid: '...'}、{$date: '...'}、{$numberLong: '...'}
type templateParser struct {
	src    string
	pos    int
	params []any
	used   int
	param  paramFunc
}

// renderTemplate 解析模板并代入参数。空模板等价于 {}。
func renderTemplate(tpl string, params []any, param paramFunc) (any, error) {
	p := &templateParser{src: tpl, params: params, param: param}
	p.skipSpace()
	if p.eof() {
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: empty template with %d params", ErrTemplateParams, len(params))
		}
		return bson.D{}, nil
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q after value", p.peekRune())
	}
	if p.used != len(params) {
		return nil, fmt.Errorf("%w: %d placeholders, %d params", ErrTemplateParams, p.used, len(params))
	}
	return v, nil
}

func (p *templateParser) eof() bool { return p.pos >= len(p.src) }

func (p *templateParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *templateParser) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *templateParser) consume(c byte) bool {
	if p.peek() == c && !p.eof() {
		p.pos++
		return true
	}
	return false
}

func (p *templateParser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *templateParser) errorf(format string, args ...any) error {
	return &TemplateError{Template: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *templateParser) value() (any, error) {
	if p.eof() {
		return nil, p.errorf("unexpected end of template")
	}
	switch c := p.peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"' || c == '\'':
		return p.str()
	case c == placeholder:
		p.pos++
		return p.placeholder()
	case c == '/':
		return p.regex()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentByte(c):
		start := p.pos
		switch word := p.ident(); word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		default:
			p.pos = start
			return nil, p.errorf("unexpected identifier %q", word)
		}
	default:
		return nil, p.errorf("unexpected %q", p.peekRune())
	}
}

func (p *templateParser) object() (any, error) {
	start := p.pos
	p.pos++
	d := bson.D{}
	p.skipSpace()
	if p.consume('}') {
		return d, nil
	}
	for {
		p.skipSpace()
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, p.errorf("expected ':' after key %q", key)
		}
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		d = append(d, bson.E{Key: key, Value: v})

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume('}') {
			break
		}
		return nil, p.errorf("expected ',' or '}' in object")
	}

	if len(d) == 1 {
		out, ok, err := extendedValue(d[0].Key, d[0].Value, time.UTC)
		if err != nil {
			return nil, &TemplateError{Template: p.src, Offset: start, Msg: err.Error()}
		}
		if ok {
			return out, nil
		}
	}
	return d, nil
}

func (p *templateParser) key() (string, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		return p.str()
	case c == placeholder:
		p.pos++
		if p.used >= len(p.params) {
			return "", fmt.Errorf("%w: more placeholders than %d params", ErrTemplateParams, len(p.params))
		}
		raw := p.params[p.used]
		p.used++
		s, ok := raw.(string)
		if !ok {
			return "", fmt.Errorf("%w: key placeholder %d needs a string, got %T", ErrTemplateParams, p.used, raw)
		}
		return s, nil
	case isIdentByte(c):
		return p.ident(), nil
	default:
		return "", p.errorf("expected key")
	}
}

func (p *templateParser) array() (any, error) {
	p.pos++
	a := bson.A{}
	p.skipSpace()
	if p.consume(']') {
		return a, nil
	}
	for {
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		a = append(a, v)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			return a, nil
		}
		return nil, p.errorf("expected ',' or ']' in array")
	}
}

func (p *templateParser) placeholder() (any, error) {
	if p.used >= len(p.params) {
		return nil, fmt.Errorf("%w: more placeholders than %d params", ErrTemplateParams, len(p.params))
	}
	raw := p.params[p.used]
	p.used++
	v, err := p.param(raw)
	if err != nil {
		return nil, fmt.Errorf("xmongo: template param %d: %w", p.used, err)
	}
	return v, nil
}

func (p *templateParser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *templateParser) escape(b *strings.Builder) error {
	p.pos++
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '"', '\'', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		if p.pos+4 > len(p.src) {
			return p.errorf("short unicode escape")
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return p.errorf("invalid unicode escape %q", p.src[p.pos:p.pos+4])
		}
		p.pos += 4
		b.WriteRune(rune(n))
	default:
		p.pos--
		return p.errorf("invalid escape '\\%c'", c)
	}
	return nil
}

func (p *templateParser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	isFloat := false
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case isDigit(c):
		case c == '.' || c == 'e' || c == 'E':
			isFloat = true
		case (c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E'):
		default:
			return p.parseNumber(start, p.src[start:p.pos], isFloat)
		}
		p.pos++
	}
	return p.parseNumber(start, p.src[start:p.pos], isFloat)
}

// parseNumber 整数按 int32、int64 依次收窄，溢出或带小数的按 float64。
func (p *templateParser) parseNumber(start int, lit string, isFloat bool) (any, error) {
	if !isFloat {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			if n >= math.MinInt32 && n <= math.MaxInt32 {
				return int32(n), nil
			}
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, &TemplateError{Template: p.src, Offset: start, Msg: fmt.Sprintf("invalid number %q", lit)}
	}
	return f, nil
}

func (p *templateParser) regex() (any, error) {
	p.pos++
	var pattern strings.Builder
	for {
		if p.eof() {
			return nil, p.errorf("unterminated regex")
		}
		c := p.src[p.pos]
		p.pos++
		if c == '/' {
			break
		}
		if c == '\\' && p.peek() == '/' {
			pattern.WriteByte('/')
			p.pos++
			continue
		}
		pattern.WriteByte(c)
	}
	flagStart := p.pos
	for !p.eof() && p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z' {
		p.pos++
	}
	return bson.Regex{Pattern: pattern.String(), Options: p.src[flagStart:p.pos]}, nil
}

func (p *templateParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' || isDigit(c) ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// scanPlaceholders 统计模板中字符串字面量之外的占位符数量，
// 并依次回调它们的字节偏移。
func scanPlaceholders(tpl string, fn func(offset int)) int {
	n := 0
	var quote byte
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == placeholder:
			n++
			if fn != nil {
				fn(i)
			}
		}
	}
	return n
}
