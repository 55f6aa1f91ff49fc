// Package source loads Lottie documents from files, stdin, HTTPS URLs,
// compressed files and dotLottie containers.
package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/lottint/internal/compression"
	"github.com/jmylchreest/lottint/internal/lottie"
	"github.com/jmylchreest/lottint/internal/security"
	"github.com/jmylchreest/lottint/internal/util/cache"
	httputil "github.com/jmylchreest/lottint/internal/util/http"
)

// Stdin is the reference that reads from standard input.
const Stdin = "-"

type options struct {
	logger      hclog.Logger
	stdin       io.Reader
	fetch       httputil.FetchOptions
	cacheDir    string
	useCache    bool
	validateURL func(string) error
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStdin replaces os.Stdin as the reader for "-".
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithFetchOptions configures remote downloads.
func WithFetchOptions(fo httputil.FetchOptions) Option {
	return func(o *options) { o.fetch = fo }
}

// WithCache keeps remote documents in dir. An empty dir uses the default
// cache location.
func WithCache(dir string) Option {
	return func(o *options) {
		o.useCache = true
		o.cacheDir = dir
	}
}

// IsRemote reports whether ref is fetched over the network.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// Load reads and parses the document named by ref.
func Load(ctx context.Context, ref string, opts ...Option) (lottie.Value, error) {
	o := newOptions(opts)
	data, name, err := read(ctx, ref, o)
	if err != nil {
		return nil, err
	}
	return decode(data, name, o.logger)
}

// Read returns the raw bytes of ref and the name used for format detection.
func Read(ctx context.Context, ref string, opts ...Option) ([]byte, string, error) {
	return read(ctx, ref, newOptions(opts))
}

// Decode parses data, decompressing or unpacking it according to name.
func Decode(data []byte, name string) (lottie.Value, error) {
	return decode(data, name, hclog.NewNullLogger())
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:      hclog.NewNullLogger(),
		stdin:       os.Stdin,
		validateURL: security.ValidateHTTPURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func read(ctx context.Context, ref string, o *options) ([]byte, string, error) {
	switch {
	case ref == "":
		return nil, "", fmt.Errorf("no document given")
	case ref == Stdin:
		data, err := io.ReadAll(security.NewLimitedReader(o.stdin, httputil.DefaultMaxSize+1))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		o.logger.Debug("read document", "source", "stdin", "bytes", len(data))
		return data, "stdin.json", nil
	case IsRemote(ref):
		return readRemote(ctx, ref, o)
	default:
		data, err := os.ReadFile(ref) // #nosec G304 -- document path supplied by the user
		if err != nil {
			return nil, "", fmt.Errorf("failed to read document: %w", err)
		}
		o.logger.Debug("read document", "source", ref, "bytes", len(data))
		return data, path.Base(strings.ReplaceAll(ref, "\\", "/")), nil
	}
}

func readRemote(ctx context.Context, ref string, o *options) ([]byte, string, error) {
	if err := o.validateURL(ref); err != nil {
		return nil, "", fmt.Errorf("refusing to fetch document: %w", err)
	}
	name := remoteName(ref)

	if o.useCache {
		cached, err := cache.Get(ctx, ref, cache.Options{Dir: o.cacheDir, Fetch: o.fetch})
		if err != nil {
			return nil, "", err
		}
		data, err := os.ReadFile(cached) // #nosec G304 -- path inside the document cache
		if err != nil {
			return nil, "", fmt.Errorf("failed to read cached document: %w", err)
		}
		o.logger.Debug("read document", "source", ref, "cached", cached, "bytes", len(data))
		return data, name, nil
	}

	data, err := httputil.Fetch(ctx, ref, o.fetch)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch document: %w", err)
	}
	o.logger.Debug("fetched document", "source", ref, "bytes", len(data))
	return data, name, nil
}

// remoteName is the last path segment of a URL.
func remoteName(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return "remote.json"
	}
	name := path.Base(u.Path)
	if !strings.Contains(name, ".") || name == "." {
		return "remote.json"
	}
	return name
}

func decode(data []byte, name string, logger hclog.Logger) (lottie.Value, error) {
	data, name, err := compression.Decompress(data, name)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(path.Ext(name), ".lottie") {
		files, err := compression.ReadArchive(data, name)
		if err != nil {
			return nil, fmt.Errorf("failed to open dotLottie container: %w", err)
		}
		entry, err := dotLottieAnimation(files)
		if err != nil {
			return nil, err
		}
		logger.Debug("using dotLottie animation", "entry", entry)
		data = files[entry]
		name = entry
	}

	doc, err := lottie.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

// dotLottieAnimation picks the entry of the first animation of a dotLottie
// container: the first id listed in manifest.json, else the first
// animations/*.json by name.
func dotLottieAnimation(files map[string][]byte) (string, error) {
	if manifest, ok := files["manifest.json"]; ok {
		if obj, err := lottie.ParseObject(manifest); err == nil {
			if anims, ok := obj.GetArray("animations"); ok && anims.Len() > 0 {
				if first, ok := anims.Items[0].(*lottie.Object); ok {
					if id, ok := first.GetString("id"); ok {
						entry := "animations/" + id + ".json"
						if _, ok := files[entry]; ok {
							return entry, nil
						}
					}
				}
			}
		}
	}

	var candidates []string
	for name := range files {
		if strings.HasPrefix(name, "animations/") && strings.HasSuffix(name, ".json") {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("dotLottie container has no animations: %w", lottie.ErrInvalidDocument)
	}
	sort.Strings(candidates)
	return candidates[0], nil
}
