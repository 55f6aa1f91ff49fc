package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/lottie"
)

func mustParse(t *testing.T, doc string) lottie.Value {
	t.Helper()
	v, err := lottie.Parse([]byte(doc))
	require.NoError(t, err)
	return v
}

func colourAt(t *testing.T, doc lottie.Value, path lottie.Path) []float64 {
	t.Helper()
	v, ok := lottie.Resolve(doc, path)
	require.True(t, ok, "path %s does not resolve", path)
	f, ok := lottie.Floats(v)
	require.True(t, ok, "path %s is not a number array", path)
	return f
}

const threeFills = `{
  "assets": [],
  "layers": [
    {"nm": "body", "shapes": [
      {"ty": "gr", "it": [
        {"ty": "sh", "ks": {"a": 0, "k": {}}},
        {"ty": "fl", "c": {"a": 0, "k": [1, 0, 0, 1], "ix": 4}, "o": {"a": 0, "k": 100}}
      ]},
      {"ty": "fl", "c": [1, 0, 0, 1]}
    ]},
    {"nm": "head", "shapes": [
      {"ty": "fl", "c": {"a": 0, "k": [0, 1, 0, 1]}}
    ]}
  ]
}`

func TestFindWrappedScenario(t *testing.T) {
	doc := mustParse(t, `{"layers":[{"shapes":[{"ty":"fl","c":{"k":[1,0,0,1]}}]}]}`)

	fills := Find(doc, nil)
	require.Len(t, fills, 1)

	f := fills[0]
	assert.True(t, f.Wrapped)
	assert.Equal(t, colour.Unit{1, 0, 0, 1}, f.Value)
	assert.Equal(t, colour.Unit{1, 0, 0, 1}, f.OriginalValue)
	assert.Equal(t, lottie.Path{"layers", "0", "shapes", "0"}, f.Path)

	target, ok := lottie.Resolve(doc, f.Path)
	require.True(t, ok)
	assert.True(t, IsFillNode(target))

	patched := Apply(doc, GroupByColor(fills)[0], colour.Unit{0, 1, 0})
	assert.Equal(t, []float64{0, 1, 0, 1}, colourAt(t, patched, lottie.Path{"layers", "0", "shapes", "0", "c", "k"}))
}

func TestFindOrderAndShape(t *testing.T) {
	fills := Find(mustParse(t, threeFills), nil)
	require.Len(t, fills, 3)

	assert.Equal(t, lottie.Path{"layers", "0", "shapes", "0", "it", "1"}, fills[0].Path)
	assert.True(t, fills[0].Wrapped)

	assert.Equal(t, lottie.Path{"layers", "0", "shapes", "1"}, fills[1].Path)
	assert.False(t, fills[1].Wrapped)
	assert.Equal(t, colour.Unit{1, 0, 0, 1}, fills[1].Value)

	assert.Equal(t, lottie.Path{"layers", "1", "shapes", "0"}, fills[2].Path)
	assert.Equal(t, colour.Unit{0, 1, 0, 1}, fills[2].Value)
}

func TestFindSkipsNonColours(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "null payload", doc: `{"ty":"fl","c":null}`},
		{name: "missing payload", doc: `{"ty":"fl"}`},
		{name: "numeric payload", doc: `{"ty":"fl","c":0}`},
		{name: "string payload", doc: `{"ty":"fl","c":"#ff0000"}`},
		{name: "wrapper without k", doc: `{"ty":"fl","c":{"a":0}}`},
		{name: "wrapper k not array", doc: `{"ty":"fl","c":{"a":1,"k":{"t":0}}}`},
		{name: "short flat array", doc: `{"ty":"fl","c":[1,0]}`},
		{name: "short wrapped array", doc: `{"ty":"fl","c":{"k":[1]}}`},
		{name: "non numeric channel", doc: `{"ty":"fl","c":[1,"0",0]}`},
		{name: "other shape type", doc: `{"ty":"st","c":{"k":[1,0,0,1]}}`},
		{name: "type not a string", doc: `{"ty":1,"c":[1,0,0]}`},
		{name: "scalar root", doc: `42`},
		{name: "null root", doc: `null`},
		{name: "empty object", doc: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Find(mustParse(t, tt.doc), nil))
		})
	}
}

func TestFindNilRoot(t *testing.T) {
	assert.Empty(t, Find(nil, nil))
}

func TestFindParentBeforeChildren(t *testing.T) {
	doc := mustParse(t, `{"ty":"fl","c":[0,0,1],"it":[{"ty":"fl","c":[0,1,0]}]}`)
	fills := Find(doc, nil)
	require.Len(t, fills, 2)
	assert.Equal(t, lottie.Path{}, fills[0].Path)
	assert.Equal(t, lottie.Path{"it", "0"}, fills[1].Path)
}

func TestFindArrayRootAndPrefix(t *testing.T) {
	doc := mustParse(t, `[{"ty":"fl","c":[0,0,1]}]`)
	fills := Find(doc, lottie.Path{"assets", "2"})
	require.Len(t, fills, 1)
	assert.Equal(t, lottie.Path{"assets", "2", "0"}, fills[0].Path)
}

func TestFindIsIdempotent(t *testing.T) {
	doc := mustParse(t, threeFills)
	assert.Equal(t, Find(doc, nil), Find(doc, nil))
}

func TestFindOriginalValueIsIndependent(t *testing.T) {
	fills := Find(mustParse(t, `{"ty":"fl","c":[0.2,0.2,0.2]}`), nil)
	require.Len(t, fills, 1)
	fills[0].Value[0] = 0.9
	assert.Equal(t, colour.Unit{0.2, 0.2, 0.2}, fills[0].OriginalValue)
}

func TestGroupByColorMultiFill(t *testing.T) {
	doc := mustParse(t, threeFills)
	groups := GroupByColor(Find(doc, nil))

	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[0].Len())
	assert.Equal(t, 1, groups[1].Len())
	assert.Equal(t, "#ff0000", groups[0].Hex())
	assert.Equal(t, "#00ff00", groups[1].Hex())

	patched := Apply(doc, groups[0], colour.Unit{0, 0, 1})

	blue, red := 0, 0
	for _, f := range Find(patched, nil) {
		switch {
		case colour.Equal(f.Value, colour.Unit{0, 0, 1}):
			blue++
		case colour.Equal(f.Value, colour.Unit{1, 0, 0}):
			red++
		}
	}
	assert.Equal(t, 2, blue)
	assert.Equal(t, 0, red)
}

func TestGroupByColorPartition(t *testing.T) {
	fills := []Fill{
		{Path: lottie.Path{"a"}, Value: colour.Unit{0.5, 0.5, 0.5}},
		{Path: lottie.Path{"b"}, Value: colour.Unit{0.1, 0.1, 0.1, 1}},
		{Path: lottie.Path{"c"}, Value: colour.Unit{0.50005, 0.5, 0.5, 0.3}},
		{Path: lottie.Path{"d"}, Value: colour.Unit{0.1, 0.1, 0.1}},
		{Path: lottie.Path{"e"}, Value: colour.Unit{0.9, 0.1, 0.1}},
	}
	for i := range fills {
		fills[i].OriginalValue = fills[i].Value.Clone()
	}

	groups := GroupByColor(fills)
	require.Len(t, groups, 3)

	assert.ElementsMatch(t, fills, Flatten(groups))

	seen := map[string]int{}
	for _, g := range groups {
		require.NotEmpty(t, g.Fills)
		for _, f := range g.Fills {
			seen[f.Path.String()]++
			assert.True(t, colour.Equal(g.Value, f.Value))
		}
	}
	for _, f := range fills {
		assert.Equal(t, 1, seen[f.Path.String()], "fill %s", f.Path)
	}

	// The group keeps the first member's raw value.
	assert.Equal(t, colour.Unit{0.5, 0.5, 0.5}, groups[0].Value)
	assert.Equal(t, colour.Unit{0.1, 0.1, 0.1, 1}, groups[1].Value)

	assert.Equal(t, 1, IndexOf(groups, colour.Unit{0.1, 0.1, 0.1}))
	assert.Equal(t, -1, IndexOf(groups, colour.Unit{0, 0, 0}))
}

func TestGroupByColorEmpty(t *testing.T) {
	assert.Empty(t, GroupByColor(nil))
}

func TestGroupValueDoesNotAliasFill(t *testing.T) {
	fills := []Fill{{Path: lottie.Path{"a"}, Value: colour.Unit{1, 0, 0}, OriginalValue: colour.Unit{1, 0, 0}}}
	groups := GroupByColor(fills)
	groups[0].Value[0] = 0
	assert.Equal(t, colour.Unit{1, 0, 0}, fills[0].Value)
}

func TestApplyDoesNotMutate(t *testing.T) {
	doc := mustParse(t, threeFills)
	before := string(lottie.Marshal(doc))

	for _, g := range GroupByColor(Find(doc, nil)) {
		_ = Apply(doc, g, colour.Unit{0.3, 0.3, 0.3})
	}

	assert.Equal(t, before, string(lottie.Marshal(doc)))
}

func TestApplyAlphaPreservation(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		opts   []ApplyOption
		colour colour.Unit
		want   []float64
	}{
		{
			name:   "keeps fill alpha",
			doc:    `{"ty":"fl","c":[0.4,0.4,0.4,0.7]}`,
			colour: colour.Unit{0.5, 0.5, 0.5},
			want:   []float64{0.5, 0.5, 0.5, 0.7},
		},
		{
			name:   "new colour alpha ignored",
			doc:    `{"ty":"fl","c":[0.4,0.4,0.4,0.7]}`,
			colour: colour.Unit{0.5, 0.5, 0.5, 0.1},
			want:   []float64{0.5, 0.5, 0.5, 0.7},
		},
		{
			name:   "keeps three channels",
			doc:    `{"ty":"fl","c":[0.4,0.4,0.4]}`,
			colour: colour.Unit{0.5, 0.5, 0.5, 0.1},
			want:   []float64{0.5, 0.5, 0.5},
		},
		{
			name:   "opaque alpha for three channels",
			doc:    `{"ty":"fl","c":[0.4,0.4,0.4]}`,
			opts:   []ApplyOption{WithOpaqueAlpha()},
			colour: colour.Unit{0.5, 0.5, 0.5},
			want:   []float64{0.5, 0.5, 0.5, 1},
		},
		{
			name:   "opaque alpha keeps existing alpha",
			doc:    `{"ty":"fl","c":[0.4,0.4,0.4,0.7]}`,
			opts:   []ApplyOption{WithOpaqueAlpha()},
			colour: colour.Unit{0.5, 0.5, 0.5},
			want:   []float64{0.5, 0.5, 0.5, 0.7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.doc)
			groups := GroupByColor(Find(doc, nil))
			require.Len(t, groups, 1)

			patched := Apply(doc, groups[0], tt.colour, tt.opts...)
			assert.Equal(t, tt.want, colourAt(t, patched, lottie.Path{"c"}))
		})
	}
}

func TestApplyPreservesSiblings(t *testing.T) {
	doc := mustParse(t, `{"ty":"fl","c":{"a":0,"k":[1,0,0,1],"ix":4},"o":{"a":0,"k":100},"nm":"Fill 1"}`)
	groups := GroupByColor(Find(doc, nil))

	patched := Apply(doc, groups[0], colour.Unit{0, 0, 1})
	assert.Equal(t,
		`{"ty":"fl","c":{"a":0,"k":[0,0,1,1],"ix":4},"o":{"a":0,"k":100},"nm":"Fill 1"}`,
		string(lottie.Marshal(patched)))
}

func TestApplySkipsStalePaths(t *testing.T) {
	doc := mustParse(t, `{"layers":[{"ty":"fl","c":[1,0,0]},{"ty":"gr","c":[1,0,0]},{"ty":"fl","c":{"k":[1,0,0]}}]}`)
	before := string(lottie.Marshal(doc))

	group := Group{
		Value: colour.Unit{1, 0, 0},
		Fills: []Fill{
			{Path: lottie.Path{"layers", "9"}, Value: colour.Unit{1, 0, 0}},
			{Path: lottie.Path{"layers", "x"}, Value: colour.Unit{1, 0, 0}},
			{Path: lottie.Path{"missing", "0"}, Value: colour.Unit{1, 0, 0}},
			{Path: lottie.Path{"layers", "1"}, Value: colour.Unit{1, 0, 0}},
			// Wrapped fill whose container is now a plain array.
			{Path: lottie.Path{"layers", "0"}, Value: colour.Unit{1, 0, 0}, Wrapped: true},
		},
	}

	patched := Apply(doc, group, colour.Unit{0, 1, 0})
	assert.Equal(t, before, string(lottie.Marshal(patched)))
}

func TestApplyWrappedFlagDrivesWriteTarget(t *testing.T) {
	doc := mustParse(t, `{"ty":"fl","c":{"k":[1,0,0]}}`)
	group := Group{Fills: []Fill{{Path: lottie.Path{}, Value: colour.Unit{1, 0, 0}, Wrapped: false}}}

	patched := Apply(doc, group, colour.Unit{0, 1, 0})
	assert.Equal(t, `{"ty":"fl","c":[0,1,0]}`, string(lottie.Marshal(patched)))
}

func TestApplyEmptyGroup(t *testing.T) {
	doc := mustParse(t, threeFills)
	patched := Apply(doc, Group{}, colour.Unit{0, 0, 1})

	assert.Equal(t, string(lottie.Marshal(doc)), string(lottie.Marshal(patched)))
	assert.NotSame(t, doc.(*lottie.Object), patched.(*lottie.Object))
}

func TestApplyShortColour(t *testing.T) {
	doc := mustParse(t, threeFills)
	groups := GroupByColor(Find(doc, nil))

	patched := Apply(doc, groups[0], colour.Unit{0, 0})
	assert.Equal(t, string(lottie.Marshal(doc)), string(lottie.Marshal(patched)))
}
