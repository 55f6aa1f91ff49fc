// Package lottie provides an order-preserving document model for Lottie animation JSON.
//
// Documents are trees of Value. Every value is one of Null, Bool, Number,
// String, *Array or *Object; callers dispatch on the concrete type with a
// type switch. Objects keep their keys in source order, and numbers and
// strings keep their source literal, so a document that is parsed and
// encoded again differs from the input only where it was edited.
package lottie

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a node of a document tree.
type Value interface {
	Kind() Kind
	clone() Value
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number. Literal holds the source text when the number
// was parsed; it is empty for numbers built in code.
type Number struct {
	Float   float64
	Literal string
}

// String is a JSON string. Text is the decoded value; Literal holds the
// escaped source text (without quotes) when the string was parsed.
type String struct {
	Text    string
	Literal string
}

// Array is an ordered JSON array.
type Array struct {
	Items []Value
}

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (*Array) Kind() Kind  { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (v Null) clone() Value   { return v }
func (v Bool) clone() Value   { return v }
func (v Number) clone() Value { return v }
func (v String) clone() Value { return v }

func (a *Array) clone() Value {
	if a == nil {
		return (*Array)(nil)
	}
	items := make([]Value, len(a.Items))
	for i, item := range a.Items {
		items[i] = Clone(item)
	}
	return &Array{Items: items}
}

// Float builds a Number from a float64.
func Float(f float64) Number {
	return Number{Float: f}
}

// Text builds a String from a Go string.
func Text(s string) String {
	return String{Text: s}
}

// NewArray builds an Array holding items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

// Len returns the number of items in the array.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Items)
}

// Append adds values to the end of the array.
func (a *Array) Append(values ...Value) {
	a.Items = append(a.Items, values...)
}

// Clone returns a deep copy of v. Copies share nothing with the original.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	return v.clone()
}

// Floats returns the numbers of an array, or false if v is not an array of
// numbers.
func Floats(v Value) ([]float64, bool) {
	arr, ok := v.(*Array)
	if !ok || arr == nil {
		return nil, false
	}
	out := make([]float64, len(arr.Items))
	for i, item := range arr.Items {
		n, ok := item.(Number)
		if !ok {
			return nil, false
		}
		out[i] = n.Float
	}
	return out, true
}

// FloatArray builds an array of numbers.
func FloatArray(values []float64) *Array {
	items := make([]Value, len(values))
	for i, f := range values {
		items[i] = Float(f)
	}
	return &Array{Items: items}
}

// formatNumber renders f the way JavaScript's JSON.stringify does for the
// values Lottie documents carry: plain decimals, exponent form only for very
// small or very large magnitudes.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
