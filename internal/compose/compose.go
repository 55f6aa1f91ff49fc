package compose

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/lottint/internal/lottie"
)

// Composer assembles characters from a registry.
type Composer struct {
	registry *Registry
	logger   hclog.Logger
}

// NewComposer creates a composer over reg. A nil logger discards output.
func NewComposer(reg *Registry, logger hclog.Logger) *Composer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Composer{registry: reg, logger: logger}
}

// Compose builds the document of char performing a with a composer that
// does not log.
func Compose(reg *Registry, char Character, a Animation) (lottie.Value, error) {
	return NewComposer(reg, nil).Compose(char, a)
}

// Compose builds the document of char performing animation a.
//
// The base document of a is copied, then for every layer name of the stack
// order that is a known part, the chosen fragment's assets are appended to
// "assets" and its layer to "layers". A missing base, stack order or
// fragment aborts the whole composition with an error wrapping ErrNotFound.
func (c *Composer) Compose(char Character, a Animation) (lottie.Value, error) {
	base, err := c.registry.Base(a)
	if err != nil {
		return nil, err
	}
	order, err := c.registry.StackOrder(a)
	if err != nil {
		return nil, err
	}

	// Resolve every fragment before building anything.
	fragments := make([]Fragment, 0, len(order))
	for _, name := range order {
		part, ok := ParsePart(name)
		if !ok {
			c.logger.Trace("skipping non-part layer", "layer", name)
			continue
		}
		variant, ok := char.Variant(part)
		if !ok {
			return nil, fmt.Errorf("no variant chosen for part %s: %w", part, ErrNotFound)
		}
		frag, err := c.registry.Fragment(a.FragmentPath(part, variant))
		if err != nil {
			return nil, err
		}
		c.logger.Debug("adding part", "part", part, "variant", variant, "assets", len(frag.Assets))
		fragments = append(fragments, frag)
	}

	out := lottie.Clone(base).(*lottie.Object)
	assets, err := arrayMember(out, "assets")
	if err != nil {
		return nil, err
	}
	layers, err := arrayMember(out, "layers")
	if err != nil {
		return nil, err
	}

	for _, frag := range fragments {
		for _, asset := range frag.Assets {
			assets.Append(lottie.Clone(asset))
		}
		if frag.Layer != nil {
			layers.Append(lottie.Clone(frag.Layer))
		}
	}

	c.logger.Debug("character composed", "animation", a, "parts", len(fragments),
		"assets", assets.Len(), "layers", layers.Len())
	return out, nil
}

// arrayMember returns obj[key] as an array, creating it when absent.
func arrayMember(obj *lottie.Object, key string) (*lottie.Array, error) {
	v, ok := obj.Get(key)
	if !ok {
		arr := lottie.NewArray()
		obj.Set(key, arr)
		return arr, nil
	}
	arr, ok := v.(*lottie.Array)
	if !ok || arr == nil {
		return nil, fmt.Errorf("base document %q is %s, not array", key, v.Kind())
	}
	return arr, nil
}
