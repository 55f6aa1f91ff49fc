package compose

import (
	"fmt"

	"github.com/jmylchreest/lottint/internal/lottie"
)

// Fragment is one part cut out of a character document: the assets named
// after the part and its root layer.
type Fragment struct {
	Assets []lottie.Value
	Layer  lottie.Value // nil when the source had no matching root layer
}

// ParseFragment decodes a fragment file of the form
// {"asset": [...], "layer": {...}}.
func ParseFragment(data []byte) (Fragment, error) {
	obj, err := lottie.ParseObject(data)
	if err != nil {
		return Fragment{}, err
	}
	return fragmentFromObject(obj)
}

func fragmentFromObject(obj *lottie.Object) (Fragment, error) {
	var f Fragment
	if v, ok := obj.Get("asset"); ok {
		switch assets := v.(type) {
		case *lottie.Array:
			f.Assets = assets.Items
		case lottie.Null:
		default:
			return Fragment{}, fmt.Errorf("fragment asset must be an array, got %s", v.Kind())
		}
	}
	if v, ok := obj.Get("layer"); ok {
		switch layer := v.(type) {
		case *lottie.Object:
			f.Layer = layer
		case lottie.Null:
		default:
			return Fragment{}, fmt.Errorf("fragment layer must be an object, got %s", v.Kind())
		}
	}
	return f, nil
}

// Value encodes the fragment in its file form.
func (f Fragment) Value() lottie.Value {
	assets := lottie.NewArray()
	for _, a := range f.Assets {
		assets.Append(lottie.Clone(a))
	}
	out := lottie.NewObject()
	out.Set("asset", assets)
	if f.Layer != nil {
		out.Set("layer", lottie.Clone(f.Layer))
	} else {
		out.Set("layer", lottie.Null{})
	}
	return out
}

// Empty reports whether the fragment has neither assets nor a layer.
func (f Fragment) Empty() bool {
	return len(f.Assets) == 0 && f.Layer == nil
}
