package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/compose"
	"github.com/jmylchreest/lottint/internal/lottie"
	"github.com/jmylchreest/lottint/internal/source"
)

func newStackOrderCmd(g *globals) *cobra.Command {
	var (
		merge string
		key   string
	)

	cmd := &cobra.Command{
		Use:   "stack-order <document>",
		Short: "Print or record the root layer order of a document",
		Long: `Print the names of the root layers of a document in document order.

With --merge the order is stored in a stack-order.json file under the
document's animation name (the file name up to the first underscore, e.g.
"loser02" for loser02_character01.json). Other entries of the file are kept.

Examples:
  # Print the stack order
  lottint stack-order run_slow_character01.json

  # Record it in the library
  lottint stack-order loser02_character01.json --merge chars/originals/loser/stack-order.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, g, args[0])
			if err != nil {
				return err
			}
			order := compose.StackOrder(doc)

			if merge == "" {
				names := lottie.NewArray()
				for _, n := range order {
					names.Append(lottie.Text(n))
				}
				return writeDocument(cmd, names, "", false)
			}

			entry := key
			if entry == "" {
				if args[0] == source.Stdin {
					return fmt.Errorf("--key is required when reading from stdin")
				}
				entry = compose.AnimationName(args[0])
			}
			existing, err := readStackOrderFile(merge)
			if err != nil {
				return err
			}
			merged, replaced := compose.MergeStackOrder(existing, entry, order)
			if err := writeDocument(cmd, merged, merge, false); err != nil {
				return err
			}
			g.logger.Info("stack order recorded", "file", merge, "key", entry,
				"layers", len(order), "replaced", replaced)
			return nil
		},
	}

	cmd.Flags().StringVar(&merge, "merge", "", "stack-order.json file to update")
	cmd.Flags().StringVar(&key, "key", "", "entry name (default: derived from the document file name)")
	return cmd
}

// readStackOrderFile parses an existing stack order file. A missing file
// yields nil.
func readStackOrderFile(path string) (lottie.Value, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by the user
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	obj, err := lottie.ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}
