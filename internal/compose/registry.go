package compose

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/lottint/internal/compression"
	"github.com/jmylchreest/lottint/internal/lottie"
)

const stackOrderFile = "stack-order.json"

// Registry is a read-only library of parsed fragments, stack orders and
// base documents. It is built once and then shared by reference.
type Registry struct {
	fragments   map[string]Fragment
	stackOrders map[string]*lottie.Object
	bases       map[string]*lottie.Object
}

// RegistryOption configures registry construction.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	logger hclog.Logger
}

// WithRegistryLogger sets the logger used while loading.
func WithRegistryLogger(logger hclog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRegistry parses a library given as slash separated path -> content.
// Files under bases/ are base documents, files named stack-order.json are
// stack orders, other files under originals/ are skipped and every other
// .json file is a part fragment. Non-JSON files are ignored.
func NewRegistry(files map[string][]byte, opts ...RegistryOption) (*Registry, error) {
	cfg := registryConfig{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		fragments:   make(map[string]Fragment),
		stackOrders: make(map[string]*lottie.Object),
		bases:       make(map[string]*lottie.Object),
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		clean := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "./"))
		if !strings.HasSuffix(clean, ".json") {
			continue
		}
		data := files[name]

		switch {
		case strings.HasPrefix(clean, "bases/"):
			obj, err := lottie.ParseObject(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse base %s: %w", clean, err)
			}
			r.bases[clean] = obj
		case path.Base(clean) == stackOrderFile:
			obj, err := lottie.ParseObject(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse stack order %s: %w", clean, err)
			}
			r.stackOrders[clean] = obj
		case strings.HasPrefix(clean, "originals/"):
			// Full source documents the fragments were cut from.
			continue
		default:
			frag, err := ParseFragment(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse fragment %s: %w", clean, err)
			}
			r.fragments[clean] = frag
		}
	}

	cfg.logger.Debug("registry loaded",
		"fragments", len(r.fragments),
		"stack_orders", len(r.stackOrders),
		"bases", len(r.bases))
	return r, nil
}

// LoadDir builds a registry from the JSON files below dir.
func LoadDir(dir string, opts ...RegistryOption) (*Registry, error) {
	files := make(map[string][]byte)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p) // #nosec G304 -- library path supplied by the user
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load library %s: %w", dir, err)
	}
	return NewRegistry(files, opts...)
}

// LoadArchive builds a registry from a zip or tar archive.
func LoadArchive(data []byte, name string, opts ...RegistryOption) (*Registry, error) {
	files, err := compression.ReadArchive(data, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read library archive %s: %w", name, err)
	}
	return NewRegistry(stripCommonRoot(files), opts...)
}

// Load builds a registry from a directory or an archive file.
func Load(location string, opts ...RegistryOption) (*Registry, error) {
	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	if info.IsDir() {
		return LoadDir(location, opts...)
	}
	data, err := os.ReadFile(location) // #nosec G304 -- library path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	return LoadArchive(data, filepath.Base(location), opts...)
}

// stripCommonRoot removes a single top-level directory shared by every
// entry, as produced by archiving a folder.
func stripCommonRoot(files map[string][]byte) map[string][]byte {
	var root string
	for name := range files {
		first, _, ok := strings.Cut(name, "/")
		if !ok {
			return files
		}
		if root == "" {
			root = first
		} else if root != first {
			return files
		}
	}
	if root == "" || root == "bases" || root == "originals" {
		return files
	}
	out := make(map[string][]byte, len(files))
	for name, data := range files {
		out[strings.TrimPrefix(name, root+"/")] = data
	}
	return out
}

// Fragment returns the fragment stored at p.
func (r *Registry) Fragment(p string) (Fragment, error) {
	f, ok := r.fragments[p]
	if !ok {
		return Fragment{}, fmt.Errorf("char part %s: %w", p, ErrNotFound)
	}
	return f, nil
}

// StackOrder returns the layer names of a, bottom to top.
func (r *Registry) StackOrder(a Animation) ([]string, error) {
	file, ok := r.stackOrders[a.StackOrderPath()]
	if !ok {
		return nil, fmt.Errorf("stack order %s: %w", a.StackOrderPath(), ErrNotFound)
	}
	v, ok := file.Get(a.StackOrderKey())
	if !ok {
		return nil, fmt.Errorf("stack order %q in %s (has %s): %w", a.StackOrderKey(), a.StackOrderPath(),
			strings.Join(file.Keys(), ", "), ErrNotFound)
	}
	arr, ok := v.(*lottie.Array)
	if !ok {
		return nil, fmt.Errorf("stack order %q in %s is not an array", a.StackOrderKey(), a.StackOrderPath())
	}
	names := make([]string, 0, arr.Len())
	for _, item := range arr.Items {
		if s, ok := item.(lottie.String); ok {
			names = append(names, s.Text)
		}
	}
	return names, nil
}

// Base returns the base document of a. The registry's copy is returned;
// callers must clone it before editing.
func (r *Registry) Base(a Animation) (*lottie.Object, error) {
	b, ok := r.bases[a.BasePath()]
	if !ok {
		return nil, fmt.Errorf("base for %s animation: %w", a, ErrNotFound)
	}
	return b, nil
}

// Variants counts the consecutive variants of p authored for a.
func (r *Registry) Variants(p Part, a Animation) int {
	n := 0
	for {
		if _, ok := r.fragments[a.FragmentPath(p, n)]; !ok {
			return n
		}
		n++
	}
}

// Len returns the number of fragments.
func (r *Registry) Len() int {
	return len(r.fragments)
}
