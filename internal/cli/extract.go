package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/compose"
)

func newExtractCmd(g *globals) *cobra.Command {
	var (
		output  string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "extract <document> <element>",
		Short: "Cut a named part out of a character document",
		Long: `Extract the assets and root layer named <element> from a character document
into a part fragment of the form {"asset": [...], "layer": {...}}.

Fragments are the building blocks of a "lottint compose" library.

Examples:
  # Extract the head of a character into the library
  lottint extract walk_character01.json head -o chars/head/walk/1.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, g, args[0])
			if err != nil {
				return err
			}
			frag, err := compose.ExtractElement(doc, args[1])
			if err != nil {
				return err
			}
			g.logger.Debug("element extracted", "element", args[1],
				"assets", len(frag.Assets), "layer", frag.Layer != nil)
			return writeDocument(cmd, frag.Value(), output, compact)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON")
	return cmd
}
