package compression

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/lottint/internal/security"
)

func readTar(r io.Reader) (map[string][]byte, error) {
	tr := tar.NewReader(r)
	files := make(map[string][]byte)
	var total int64

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		name := strings.TrimPrefix(header.Name, "./")
		if err := security.ValidateFilePath(name, archiveRoot); err != nil {
			return nil, fmt.Errorf("invalid archive entry %q: %w", header.Name, err)
		}

		content, err := readLimited(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from archive: %w", header.Name, err)
		}

		total += int64(len(content))
		if total > MaxSize {
			return nil, fmt.Errorf("archive exceeds decompression size limit")
		}
		files[name] = content
	}
	return files, nil
}
