package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/lottint/internal/security"
)

func noop() {}

// openStream wraps data in the decompressor f needs. Plain tar and zip data
// is returned as is.
func openStream(data []byte, f Format) (io.Reader, func(), error) {
	src := bytes.NewReader(data)
	switch f {
	case FormatGz, FormatTarGz:
		gzr, err := gzip.NewReader(src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, func() { _ = gzr.Close() }, nil
	case FormatXz, FormatTarXz:
		xzr, err := xz.NewReader(src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, noop, nil
	case FormatBz2, FormatTarBz2:
		return bzip2.NewReader(src), noop, nil
	default:
		return src, noop, nil
	}
}

// readLimited reads r to the end, failing once MaxSize bytes are exceeded.
func readLimited(r io.Reader) ([]byte, error) {
	// The extra byte lets a file of exactly MaxSize reach EOF.
	return io.ReadAll(security.NewLimitedReader(r, MaxSize+1))
}
