package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/fill"
	"github.com/jmylchreest/lottint/internal/session"
)

const swatchWidth = 9

// groupSummary is the JSON form of a colour group.
type groupSummary struct {
	Index         int         `json:"index"`
	Hex           string      `json:"hex"`
	Value         colour.Unit `json:"value"`
	OriginalValue colour.Unit `json:"originalValue"`
	Fills         int         `json:"fills"`
	Paths         []string    `json:"paths"`
}

func newGroupsCmd(g *globals) *cobra.Command {
	var (
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "groups <document>",
		Short: "List the colour groups of a document",
		Long: `Group the solid fills of a document by colour and list the groups.

Fills whose RGB channels differ by at most 0.0001 share a group; alpha is
ignored. Group indexes are the ones accepted by "lottint recolor --group".

Examples:
  # List colour groups with terminal swatches
  lottint groups --preview character.json

  # List colour groups as JSON
  lottint groups -f json character.json`,
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
			groups := s.Groups()

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), summarise(groups))
			}
			showSwatch := preview && colour.SupportsANSIColours()
			_, err = io.WriteString(cmd.OutOrStdout(), groupsTable(groups, showSwatch).Render())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour swatches in terminal")
	return cmd
}

func summarise(groups []fill.Group) []groupSummary {
	out := make([]groupSummary, len(groups))
	for i, grp := range groups {
		paths := make([]string, len(grp.Fills))
		for j, f := range grp.Fills {
			paths[j] = f.Path.String()
		}
		out[i] = groupSummary{
			Index:         i,
			Hex:           grp.Hex(),
			Value:         grp.Value,
			OriginalValue: grp.OriginalValue,
			Fills:         grp.Len(),
			Paths:         paths,
		}
	}
	return out
}

func groupsTable(groups []fill.Group, swatch bool) *Table {
	headers := []string{"GROUP", "COLOUR", "CHANNELS", "FILLS"}
	if swatch {
		headers = append(headers, "PREVIEW")
	}
	table := NewTable(headers...)
	table.AlignRight(0)
	table.AlignRight(3)

	for i, grp := range groups {
		row := []string{
			strconv.Itoa(i),
			grp.Hex(),
			colour.FormatChannels(grp.Value),
			strconv.Itoa(grp.Len()),
		}
		if swatch {
			row = append(row, colour.ColourPreviewWithText(grp.Value, grp.Hex(), swatchWidth))
		}
		table.AddRow(row...)
	}
	return table
}
