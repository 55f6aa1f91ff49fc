package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/fill"
	"github.com/jmylchreest/lottint/internal/session"
)

// Output formats of the listing commands.
const (
	formatTable = "table"
	formatJSON  = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	}
	return fmt.Errorf("invalid format %q (valid: table, json)", format)
}

func newFillsCmd(g *globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fills <document>",
		Short: "List the solid fills of a document",
		Long: `List every solid fill ("ty": "fl") of a Lottie document in document order,
with its path, colour and whether the colour is animatable-wrapped (c.k).

Examples:
  # List fills as a table
  lottint fills character.json

  # List fills as JSON
  lottint fills --format json character.json

  # Read from stdin
  cat character.json | lottint fills -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			doc, err := loadDocument(cmd, g, args[0])
			if err != nil {
				return err
			}

			s := session.New(session.WithLogger(g.logger.Named("session")))
			s.Load(doc)
			fills := s.Fills()
			g.logger.Debug("fills located", "count", len(fills), "groups", len(s.Groups()))

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), fills)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), fillsTable(fills).Render())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json)")
	return cmd
}

func fillsTable(fills []fill.Fill) *Table {
	table := NewTable("#", "COLOUR", "CHANNELS", "WRAPPED", "PATH")
	table.AlignRight(0)
	for i, f := range fills {
		table.AddRow(
			strconv.Itoa(i),
			f.Value.Hex(),
			colour.FormatChannels(f.Value),
			strconv.FormatBool(f.Wrapped),
			f.Path.String(),
		)
	}
	return table
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
