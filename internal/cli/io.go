package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/lottie"
	"github.com/jmylchreest/lottint/internal/source"
)

// loadDocument reads ref through the document source with the command's
// context and logger.
func loadDocument(cmd *cobra.Command, g *globals, ref string) (lottie.Value, error) {
	opts := []source.Option{
		source.WithLogger(g.logger.Named("source")),
		source.WithStdin(cmd.InOrStdin()),
	}
	if g.cache {
		opts = append(opts, source.WithCache(os.Getenv(EnvCacheDir)))
	}

	doc, err := source.Load(cmd.Context(), ref, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", displayRef(ref), err)
	}
	return doc, nil
}

func displayRef(ref string) string {
	if ref == source.Stdin {
		return "stdin"
	}
	return ref
}

// writeDocument writes v to path, or to stdout when path is empty or "-".
func writeDocument(cmd *cobra.Command, v lottie.Value, path string, compact bool) error {
	indent := lottie.DefaultIndent
	if compact {
		indent = ""
	}
	return writeOutput(cmd, path, func(w io.Writer) error {
		return lottie.Encode(w, v, indent)
	})
}

// writeOutput runs write against stdout or a newly created file. Files are
// written next to their destination and renamed into place.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	werr := write(tmp)
	cerr := tmp.Close()
	if werr != nil {
		_ = os.Remove(tmp.Name())
		return werr
	}
	if cerr != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close output file: %w", cerr)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { // #nosec G302 -- documents are not secret
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
