package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/compose"
)

func newSwapCmd(g *globals) *cobra.Command {
	var (
		output  string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "swap <document> <donor> <part>",
		Short: "Replace one part of a character with another character's",
		Long: `Replace the assets and root layer named <part> in a character document with
the ones of a donor document. The rest of the document is unchanged.

Examples:
  # Give character 1 the head of character 3
  lottint swap walk_character01.json walk_character03.json head -o mixed.json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == args[1] && args[0] == "-" {
				return fmt.Errorf("document and donor cannot both be stdin")
			}
			doc, err := loadDocument(cmd, g, args[0])
			if err != nil {
				return err
			}
			donor, err := loadDocument(cmd, g, args[1])
			if err != nil {
				return err
			}
			out, err := compose.ReplacePart(doc, donor, args[2])
			if err != nil {
				return err
			}
			g.logger.Debug("part swapped", "part", args[2])
			return writeDocument(cmd, out, output, compact)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON")
	return cmd
}
