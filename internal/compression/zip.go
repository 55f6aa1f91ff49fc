package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/jmylchreest/lottint/internal/security"
)

// archiveRoot anchors entry path validation; nothing is written there.
const archiveRoot = "/archive"

func readZip(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	files := make(map[string][]byte, len(zr.File))
	var total int64
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.TrimPrefix(f.Name, "./")
		if err := security.ValidateFilePath(name, archiveRoot); err != nil {
			return nil, fmt.Errorf("invalid archive entry %q: %w", f.Name, err)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		content, err := readLimited(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from archive: %w", f.Name, err)
		}

		total += int64(len(content))
		if total > MaxSize {
			return nil, fmt.Errorf("archive exceeds decompression size limit")
		}
		files[name] = content
	}
	return files, nil
}
