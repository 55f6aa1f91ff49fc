package lottie

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// ErrInvalidDocument is returned when input cannot be parsed as JSON.
var ErrInvalidDocument = errors.New("invalid document")

// Parse decodes JSON text into a Value, keeping object key order and the
// source text of numbers and strings.
func Parse(data []byte) (Value, error) {
	// jsonparser is lenient about trailing garbage and some malformed input,
	// so the whole text is checked first.
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	v, err := build(raw, dataType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return v, nil
}

// ParseObject decodes JSON text that must hold an object at the root.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: root is %s, not object", ErrInvalidDocument, v.Kind())
	}
	return obj, nil
}

func build(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null{}, nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return nil, err
		}
		return Bool(b), nil

	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		if err != nil {
			// Out of range literals become infinities; the literal is kept for output.
			f, err = strconv.ParseFloat(string(raw), 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, err
			}
		}
		return Number{Float: f, Literal: string(raw)}, nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, err
		}
		return String{Text: s, Literal: string(raw)}, nil

	case jsonparser.Array:
		arr := &Array{Items: []Value{}}
		var inner error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, vt jsonparser.ValueType, _ int, err error) {
			if inner != nil {
				return
			}
			if err != nil {
				inner = err
				return
			}
			item, err := build(value, vt)
			if err != nil {
				inner = err
				return
			}
			arr.Append(item)
		})
		if err != nil {
			return nil, err
		}
		if inner != nil {
			return nil, inner
		}
		return arr, nil

	case jsonparser.Object:
		obj := NewObject()
		// Keys arrive already unescaped.
		err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, vt jsonparser.ValueType, _ int) error {
			item, err := build(value, vt)
			if err != nil {
				return err
			}
			obj.Set(string(key), item)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unexpected JSON value type %s", dataType)
	}
}
