package compose

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/lottint/internal/lottie"
)

const (
	nameKey   = "nm"
	unnamed   = "unnamed"
	assetsKey = "assets"
	layersKey = "layers"
)

// ExtractElement cuts the element called name out of doc: every asset
// whose "nm" is name and the first root layer with that name. It fails with
// ErrNotFound when neither exists.
func ExtractElement(doc lottie.Value, name string) (Fragment, error) {
	obj, ok := doc.(*lottie.Object)
	if !ok {
		return Fragment{}, fmt.Errorf("element %q: document is not an object: %w", name, ErrNotFound)
	}

	var f Fragment
	if assets, ok := obj.GetArray(assetsKey); ok {
		for _, a := range assets.Items {
			if named(a, name) {
				f.Assets = append(f.Assets, lottie.Clone(a))
			}
		}
	}
	if layers, ok := obj.GetArray(layersKey); ok {
		for _, l := range layers.Items {
			if named(l, name) {
				f.Layer = lottie.Clone(l)
				break
			}
		}
	}

	if f.Empty() {
		return Fragment{}, fmt.Errorf("no assets or layers named %q: %w", name, ErrNotFound)
	}
	return f, nil
}

// StackOrder lists the names of the root layers of doc in document order.
// Layers without a name are reported as "unnamed".
func StackOrder(doc lottie.Value) []string {
	obj, ok := doc.(*lottie.Object)
	if !ok {
		return nil
	}
	layers, ok := obj.GetArray(layersKey)
	if !ok {
		return nil
	}
	names := make([]string, 0, layers.Len())
	for _, l := range layers.Items {
		name := unnamed
		if lo, ok := l.(*lottie.Object); ok {
			if nm, ok := lo.GetString(nameKey); ok {
				name = nm
			}
		}
		names = append(names, name)
	}
	return names
}

// AnimationName derives the stack order key of a source file: the part of
// the base name before the first underscore, e.g. "run02" for
// "run02_character01.json".
func AnimationName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name, _, _ := strings.Cut(base, "_")
	return name
}

// MergeStackOrder sets key to order in a stack-order document. existing
// may be nil or not an object, in which case a new document is started.
// It reports whether key was already present.
func MergeStackOrder(existing lottie.Value, key string, order []string) (*lottie.Object, bool) {
	out, ok := lottie.Clone(existing).(*lottie.Object)
	if !ok || out == nil {
		out = lottie.NewObject()
	}
	_, replaced := out.Get(key)

	names := lottie.NewArray()
	for _, n := range order {
		names.Append(lottie.Text(n))
	}
	out.Set(key, names)
	return out, replaced
}

// ReplacePart returns a copy of doc in which the assets and root layer
// named part are replaced by the ones of donor. The donor's assets take
// the position of the first replaced asset and its layer the position of
// the replaced layer; either is appended when doc has no such part.
// Neither input is modified.
func ReplacePart(doc, donor lottie.Value, part string) (lottie.Value, error) {
	frag, err := ExtractElement(donor, part)
	if err != nil {
		return nil, fmt.Errorf("donor: %w", err)
	}
	if frag.Layer == nil {
		return nil, fmt.Errorf("donor has no root layer named %q: %w", part, ErrNotFound)
	}

	out, ok := lottie.Clone(doc).(*lottie.Object)
	if !ok || out == nil {
		return nil, fmt.Errorf("document is not an object")
	}

	assets, err := arrayMember(out, assetsKey)
	if err != nil {
		return nil, err
	}
	kept := make([]lottie.Value, 0, assets.Len())
	insertAt := -1
	for _, a := range assets.Items {
		if named(a, part) {
			if insertAt < 0 {
				insertAt = len(kept)
			}
			continue
		}
		kept = append(kept, a)
	}
	if insertAt < 0 {
		insertAt = len(kept)
	}
	merged := make([]lottie.Value, 0, len(kept)+len(frag.Assets))
	merged = append(merged, kept[:insertAt]...)
	merged = append(merged, frag.Assets...)
	merged = append(merged, kept[insertAt:]...)
	assets.Items = merged

	layers, err := arrayMember(out, layersKey)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, l := range layers.Items {
		if named(l, part) {
			layers.Items[i] = frag.Layer
			replaced = true
			break
		}
	}
	if !replaced {
		layers.Append(frag.Layer)
	}
	return out, nil
}

func named(v lottie.Value, name string) bool {
	obj, ok := v.(*lottie.Object)
	if !ok {
		return false
	}
	nm, ok := obj.GetString(nameKey)
	return ok && nm == name
}
