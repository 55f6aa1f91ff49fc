package fill

import (
	"github.com/jmylchreest/lottint/internal/colour"
)

// Group is a set of fills sharing one colour.
type Group struct {
	// Value is the colour of the group. It is fixed by the first fill added
	// and only changes when the whole group is recoloured.
	Value colour.Unit `json:"value"`

	// OriginalValue is the discovered colour of the first fill.
	OriginalValue colour.Unit `json:"originalValue"`

	Fills []Fill `json:"fills"`
}

// Hex returns the group colour as "#rrggbb".
func (g Group) Hex() string {
	return g.Value.Hex()
}

// Len returns the number of fills in the group.
func (g Group) Len() int {
	return len(g.Fills)
}

// GroupByColor partitions fills by colour. Fills are taken in order and
// join the first group whose value is colour.Equal to theirs; groups are
// returned in the order their first fill was seen.
func GroupByColor(fills []Fill) []Group {
	var groups []Group
	for _, f := range fills {
		idx := -1
		for i := range groups {
			if colour.Equal(groups[i].Value, f.Value) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			groups[idx].Fills = append(groups[idx].Fills, f)
			continue
		}
		groups = append(groups, Group{
			Value:         f.Value.Clone(),
			OriginalValue: f.OriginalValue.Clone(),
			Fills:         []Fill{f},
		})
	}
	return groups
}

// Flatten returns the fills of all groups, group by group.
func Flatten(groups []Group) []Fill {
	var fills []Fill
	for _, g := range groups {
		fills = append(fills, g.Fills...)
	}
	return fills
}

// IndexOf returns the index of the first group whose colour equals c, or -1.
func IndexOf(groups []Group, c colour.Unit) int {
	for i, g := range groups {
		if colour.Equal(g.Value, c) {
			return i
		}
	}
	return -1
}
