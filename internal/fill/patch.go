package fill

import (
	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/lottie"
)

type applyConfig struct {
	opaqueAlpha bool
}

// ApplyOption customises Apply.
type ApplyOption func(*applyConfig)

// WithOpaqueAlpha writes four channels for every fill: fills recorded
// without alpha get an alpha of 1. Use it when the destination requires
// RGBA colours.
func WithOpaqueAlpha() ApplyOption {
	return func(c *applyConfig) {
		c.opaqueAlpha = true
	}
}

// Apply returns a deep copy of doc with every fill of group set to
// newColour. doc is not modified.
//
// Only the RGB channels of newColour are used. A fill recorded with four
// channels keeps its own alpha. Fills whose path no longer resolves, or no
// longer leads to a fill node, are skipped. A newColour with fewer than
// three channels changes nothing.
func Apply(doc lottie.Value, group Group, newColour colour.Unit, opts ...ApplyOption) lottie.Value {
	var cfg applyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	out := lottie.Clone(doc)
	if !newColour.Valid() {
		return out
	}

	for _, f := range group.Fills {
		target, ok := lottie.Resolve(out, f.Path)
		if !ok || !IsFillNode(target) {
			continue
		}
		node := target.(*lottie.Object)
		value := lottie.FloatArray(written(f.Value, newColour, cfg))

		if !f.Wrapped {
			node.Set(ColourKey, value)
			continue
		}
		container, _ := node.Get(ColourKey)
		if obj, ok := container.(*lottie.Object); ok && obj != nil {
			obj.Set(KeyframeKey, value)
		}
	}
	return out
}

// written computes the channels stored for one fill.
func written(recorded, newColour colour.Unit, cfg applyConfig) []float64 {
	rgb := newColour.RGB()
	switch {
	case recorded.HasAlpha():
		return append(rgb, recorded.Alpha())
	case cfg.opaqueAlpha:
		return append(rgb, 1)
	default:
		return rgb
	}
}
