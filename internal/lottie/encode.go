package lottie

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultIndent is the indent used when exporting documents.
const DefaultIndent = "  "

// Marshal encodes v as compact JSON.
func Marshal(v Value) []byte {
	return MarshalIndent(v, "")
}

// MarshalIndent encodes v as JSON, one member per line with the given
// indent. An empty indent produces compact output.
func MarshalIndent(v Value, indent string) []byte {
	e := &encoder{indent: indent}
	e.value(v, 0)
	return e.buf.Bytes()
}

// Encode writes v to w followed by a newline.
func Encode(w io.Writer, v Value, indent string) error {
	data := MarshalIndent(v, indent)
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

func (e *encoder) value(v Value, depth int) {
	switch node := v.(type) {
	case nil, Null:
		e.buf.WriteString("null")
	case Bool:
		if node {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case Number:
		if node.Literal != "" {
			e.buf.WriteString(node.Literal)
		} else {
			e.buf.WriteString(formatNumber(node.Float))
		}
	case String:
		e.buf.WriteByte('"')
		if node.Literal != "" || node.Text == "" {
			e.buf.WriteString(node.Literal)
		} else {
			writeEscaped(&e.buf, node.Text)
		}
		e.buf.WriteByte('"')
	case *Array:
		if node.Len() == 0 {
			e.buf.WriteString("[]")
			return
		}
		e.buf.WriteByte('[')
		for i, item := range node.Items {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(item, depth+1)
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case *Object:
		if node.Len() == 0 {
			e.buf.WriteString("{}")
			return
		}
		e.buf.WriteByte('{')
		first := true
		for k, item := range node.All() {
			if !first {
				e.buf.WriteByte(',')
			}
			first = false
			e.newline(depth + 1)
			e.buf.WriteByte('"')
			writeEscaped(&e.buf, k)
			e.buf.WriteByte('"')
			e.buf.WriteByte(':')
			if e.indent != "" {
				e.buf.WriteByte(' ')
			}
			e.value(item, depth+1)
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	}
}

// writeEscaped writes s as the body of a JSON string, escaping the same
// characters JSON.stringify does.
func writeEscaped(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			default:
				if c < 0x20 {
					buf.WriteString(`\u00`)
					buf.WriteByte(hex[c>>4])
					buf.WriteByte(hex[c&0xf])
				} else {
					buf.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(`�`)
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
}
