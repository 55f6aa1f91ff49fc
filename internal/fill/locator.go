// Package fill locates, groups and recolours the solid fills of a Lottie
// document.
//
// A fill node is an object whose "ty" is "fl" and whose "c" member holds
// the colour, either directly as an array ([r,g,b] or [r,g,b,a]) or wrapped
// in an animatable value object under "k". Fills are addressed by path, so
// the same Fill can be applied to any copy of the document it was found in.
package fill

import (
	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/lottie"
)

// Lottie keys used to recognise fill nodes.
const (
	TypeKey     = "ty"
	FillType    = "fl"
	ColourKey   = "c"
	KeyframeKey = "k"
)

// Fill is one located fill colour.
type Fill struct {
	// Path addresses the fill node (the object carrying "ty": "fl").
	Path lottie.Path `json:"path"`

	// Value is the colour currently recorded for the fill.
	Value colour.Unit `json:"value"`

	// OriginalValue is the colour at discovery time.
	OriginalValue colour.Unit `json:"originalValue"`

	// Wrapped is true when the colour lives in c.k rather than directly in c.
	Wrapped bool `json:"isWrapped"`
}

// Find returns every fill under v in depth-first document order. prefix is
// prepended to every returned path. Scalars and nil yield no fills.
func Find(v lottie.Value, prefix lottie.Path) []Fill {
	if prefix == nil {
		prefix = lottie.Path{}
	}
	var fills []Fill
	walk(v, prefix, &fills)
	return fills
}

func walk(v lottie.Value, path lottie.Path, fills *[]Fill) {
	switch node := v.(type) {
	case *lottie.Array:
		if node == nil {
			return
		}
		for i, item := range node.Items {
			walk(item, path.AppendIndex(i), fills)
		}

	case *lottie.Object:
		if node == nil {
			return
		}
		// The node itself is emitted before any of its members.
		if f, ok := locate(node, path); ok {
			*fills = append(*fills, f)
		}
		for key, child := range node.All() {
			walk(child, path.Append(key), fills)
		}
	}
}

// locate reads the colour of a fill node.
func locate(node *lottie.Object, path lottie.Path) (Fill, bool) {
	payload, ok := fillPayload(node)
	if !ok {
		return Fill{}, false
	}

	var (
		values  []float64
		wrapped bool
	)
	switch p := payload.(type) {
	case *lottie.Array:
		values, ok = lottie.Floats(p)
	case *lottie.Object:
		k, found := p.Get(KeyframeKey)
		if !found {
			return Fill{}, false
		}
		values, ok = lottie.Floats(k)
		wrapped = true
	default:
		return Fill{}, false
	}
	if !ok || len(values) < 3 {
		return Fill{}, false
	}

	return Fill{
		Path:          path,
		Value:         colour.Unit(values),
		OriginalValue: colour.Unit(values).Clone(),
		Wrapped:       wrapped,
	}, true
}

// fillPayload returns the "c" member of a fill node. It reports false when
// node is not a fill node or "c" is null.
func fillPayload(node *lottie.Object) (lottie.Value, bool) {
	ty, ok := node.GetString(TypeKey)
	if !ok || ty != FillType {
		return nil, false
	}
	payload, ok := node.Get(ColourKey)
	if !ok {
		return nil, false
	}
	if _, isNull := payload.(lottie.Null); isNull {
		return nil, false
	}
	return payload, true
}

// IsFillNode reports whether v is an object that looks like a fill node.
func IsFillNode(v lottie.Value) bool {
	obj, ok := v.(*lottie.Object)
	if !ok || obj == nil {
		return false
	}
	_, ok = fillPayload(obj)
	return ok
}
