package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/fill"
	"github.com/jmylchreest/lottint/internal/session"
)

func newRecolorCmd(g *globals) *cobra.Command {
	var (
		groupSpecs   []string
		replaceSpecs []string
		output       string
		opaque       bool
		compact      bool
	)

	cmd := &cobra.Command{
		Use:     "recolor <document>",
		Aliases: []string{"recolour"},
		Short:   "Recolour fill groups and write the document",
		Long: `Change the colour of whole colour groups and write the resulting document.

Groups are addressed by index (see "lottint groups") or by their current
colour. Edits apply in order: --group first, then --replace. Fills keep their
own alpha. With --opaque, recoloured fills stored without alpha are written
with four channels and an alpha of 1.

Examples:
  # Make group 0 red and group 3 blue
  lottint recolor --group 0=#ff0000 --group 3=#0000ff character.json -o out.json

  # Replace a colour wherever it is used
  lottint recolor --replace '#f4c7a1=#8d5524' character.json > out.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(groupSpecs) == 0 && len(replaceSpecs) == 0 {
				return fmt.Errorf("nothing to do: give at least one --group or --replace")
			}
			edits, err := parseGroupEdits(groupSpecs)
			if err != nil {
				return err
			}
			replacements, err := parseReplacements(replaceSpecs)
			if err != nil {
				return err
			}

			doc, err := loadDocument(cmd, g, args[0])
			if err != nil {
				return err
			}

			opts := []session.Option{session.WithLogger(g.logger.Named("session"))}
			if opaque {
				opts = append(opts, session.WithApplyOptions(fill.WithOpaqueAlpha()))
			}
			s := session.New(opts...)
			s.Load(doc)

			for _, e := range edits {
				if !s.Recolor(e.index, e.colour) {
					return fmt.Errorf("no colour group %d (document has %d groups)", e.index, len(s.Groups()))
				}
			}
			for _, r := range replacements {
				matched := matchingGroups(s.Groups(), r.from)
				if len(matched) == 0 {
					return fmt.Errorf("no colour group matches %s", r.from.Hex())
				}
				for _, index := range matched {
					s.Recolor(index, r.to)
				}
			}

			g.logger.Info("document recoloured",
				"groups_changed", len(edits)+len(replacements),
				"generation", s.Generation())
			return writeDocument(cmd, s.Document(), output, compact)
		},
	}

	cmd.Flags().StringArrayVarP(&groupSpecs, "group", "g", nil, "set group N to a colour (N=#rrggbb), repeatable")
	cmd.Flags().StringArrayVarP(&replaceSpecs, "replace", "r", nil, "replace a colour (#old=#new), repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opaque, "opaque", false, "write RGBA (alpha 1) for recoloured fills stored as RGB")
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON")
	return cmd
}

type groupEdit struct {
	index  int
	colour colour.Unit
}

type replacement struct {
	from, to colour.Unit
}

// matchingGroups returns the groups shown as the same hex colour as c, or
// failing that the group tolerantly equal to it.
func matchingGroups(groups []fill.Group, c colour.Unit) []int {
	var out []int
	for i, grp := range groups {
		if grp.Hex() == c.Hex() {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		if i := fill.IndexOf(groups, c); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

func parseGroupEdits(specs []string) ([]groupEdit, error) {
	edits := make([]groupEdit, 0, len(specs))
	for _, spec := range specs {
		idx, hex, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --group %q (expected N=#rrggbb)", spec)
		}
		index, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid group index %q", idx)
		}
		c, err := colour.ParseHex(strings.TrimSpace(hex))
		if err != nil {
			return nil, err
		}
		edits = append(edits, groupEdit{index: index, colour: c})
	}
	return edits, nil
}

func parseReplacements(specs []string) ([]replacement, error) {
	out := make([]replacement, 0, len(specs))
	for _, spec := range specs {
		from, to, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --replace %q (expected #old=#new)", spec)
		}
		fc, err := colour.ParseHex(strings.TrimSpace(from))
		if err != nil {
			return nil, err
		}
		tc, err := colour.ParseHex(strings.TrimSpace(to))
		if err != nil {
			return nil, err
		}
		out = append(out, replacement{from: fc, to: tc})
	}
	return out, nil
}
