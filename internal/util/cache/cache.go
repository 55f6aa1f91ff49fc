// Package cache keeps downloaded documents on disk, keyed by URL.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	httputil "github.com/jmylchreest/lottint/internal/util/http"
)

// Options configures document caching behaviour.
type Options struct {
	// Dir is the directory where documents are cached.
	// If empty, defaults to ~/.cache/lottint/documents
	Dir string

	// Refresh downloads the document even when a cached copy exists.
	Refresh bool

	// Fetch is passed to the HTTP fetcher.
	Fetch httputil.FetchOptions
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "lottint", "documents"), nil
	}
	return filepath.Join(cacheDir, "lottint", "documents"), nil
}

// Filename derives a stable file name from a URL: a hash of the URL plus
// the extension of its path, so format detection still works on the copy.
func Filename(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	name := fmt.Sprintf("%x", hash[:16])

	ext := ".json"
	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		// Keep double extensions such as .json.gz.
		if e := path.Ext(base); e != "" && len(e) <= 7 {
			ext = e
			if inner := path.Ext(base[:len(base)-len(e)]); inner != "" && len(inner) <= 6 {
				ext = inner + e
			}
		}
	}
	return name + ext
}

// Get returns the cached path of rawURL, downloading it first when needed.
func Get(ctx context.Context, rawURL string, opts Options) (string, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cached := filepath.Join(dir, Filename(rawURL))
	if !opts.Refresh {
		if _, err := os.Stat(cached); err == nil {
			return cached, nil
		}
	}

	data, err := httputil.Fetch(ctx, rawURL, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download document: %w", err)
	}

	// Write then rename so a failed download never leaves a partial file.
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to write cached document: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached document: %w", firstErr(werr, cerr))
	}
	if err := os.Rename(tmp.Name(), cached); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store cached document: %w", err)
	}
	return cached, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
