package lottie

import (
	"strconv"
	"strings"
)

// Path addresses one node from the document root. Each segment is an
// object key or a decimal array index.
type Path []string

// Append returns a new path with seg added. The receiver is not modified.
func (p Path) Append(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// AppendIndex returns a new path with an array index added.
func (p Path) AppendIndex(i int) Path {
	return p.Append(strconv.Itoa(i))
}

// Equal reports whether two paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path as a slash separated pointer, e.g. "/layers/0/shapes".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(seg))
	}
	return b.String()
}

// Resolve walks path from root. It reports false when a key is missing, an
// index is out of range or not a canonical decimal, or a segment meets a
// scalar.
func Resolve(root Value, path Path) (Value, bool) {
	current := root
	for _, seg := range path {
		switch node := current.(type) {
		case *Object:
			v, ok := node.Get(seg)
			if !ok {
				return nil, false
			}
			current = v
		case *Array:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= node.Len() || strconv.Itoa(i) != seg {
				return nil, false
			}
			current = node.Items[i]
		default:
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}
