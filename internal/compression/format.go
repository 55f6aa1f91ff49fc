// Package compression reads archives and compressed files into memory.
package compression

import (
	"fmt"
	"path"
	"strings"
)

// MaxSize caps the decompressed size of a file or archive entry.
const MaxSize int64 = 100 * 1024 * 1024

// Format identifies a container or compression format.
type Format int

const (
	FormatNone Format = iota
	FormatZip
	FormatTar
	FormatTarGz
	FormatTarXz
	FormatTarBz2
	FormatGz
	FormatXz
	FormatBz2
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarXz:
		return "tar.xz"
	case FormatTarBz2:
		return "tar.bz2"
	case FormatGz:
		return "gz"
	case FormatXz:
		return "xz"
	case FormatBz2:
		return "bz2"
	default:
		return "none"
	}
}

// IsArchive reports whether f holds several files.
func (f Format) IsArchive() bool {
	switch f {
	case FormatZip, FormatTar, FormatTarGz, FormatTarXz, FormatTarBz2:
		return true
	}
	return false
}

// DetectFormat detects the format from a file name or URL.
func DetectFormat(name string) Format {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return FormatTarXz
	case strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tbz"), strings.HasSuffix(name, ".tbz2"):
		return FormatTarBz2
	case strings.HasSuffix(name, ".tar"):
		return FormatTar
	case strings.HasSuffix(name, ".zip"), strings.HasSuffix(name, ".lottie"):
		return FormatZip
	case strings.HasSuffix(name, ".gz"):
		return FormatGz
	case strings.HasSuffix(name, ".xz"):
		return FormatXz
	case strings.HasSuffix(name, ".bz2"):
		return FormatBz2
	}
	return FormatNone
}

// ReadArchive returns every regular file of a zip or tar archive, keyed by
// its slash separated path inside the archive.
func ReadArchive(data []byte, name string) (map[string][]byte, error) {
	switch f := DetectFormat(name); f {
	case FormatZip:
		return readZip(data)
	case FormatTar, FormatTarGz, FormatTarXz, FormatTarBz2:
		r, closeFn, err := openStream(data, f)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		return readTar(r)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", path.Base(name))
	}
}

// Decompress decompresses a single .gz, .xz or .bz2 file. It returns the
// decompressed data and name with the compression suffix removed. Other
// names are returned unchanged.
func Decompress(data []byte, name string) ([]byte, string, error) {
	f := DetectFormat(name)
	switch f {
	case FormatGz, FormatXz, FormatBz2:
	default:
		return data, name, nil
	}

	r, closeFn, err := openStream(data, f)
	if err != nil {
		return nil, "", err
	}
	defer closeFn()

	out, err := readLimited(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress %s: %w", path.Base(name), err)
	}
	return out, name[:len(name)-len(f.String())-1], nil
}
