package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/fill"
	"github.com/jmylchreest/lottint/internal/lottie"
)

const doc = `{"assets":[],"layers":[
  {"ty":"fl","c":{"a":0,"k":[1,0,0,1]}},
  {"ty":"fl","c":[1,0,0]},
  {"ty":"fl","c":[0,1,0,0.5]}
]}`

func load(t *testing.T) *Session {
	t.Helper()
	v, err := lottie.Parse([]byte(doc))
	require.NoError(t, err)
	s := New()
	s.Load(v)
	return s
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := New()
	assert.False(t, s.Loaded())
	assert.Nil(t, s.Document())
	assert.Empty(t, s.Groups())
	assert.Equal(t, 0, s.Generation())
	assert.False(t, s.Recolor(0, colour.Unit{0, 0, 1}))
	assert.Equal(t, 0, s.Generation())
}

func TestLoad(t *testing.T) {
	s := load(t)
	assert.True(t, s.Loaded())
	assert.Equal(t, 1, s.Generation())

	groups := s.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[0].Len())
	assert.Equal(t, 1, groups[1].Len())
	assert.Len(t, s.Fills(), 3)
}

func TestRecolor(t *testing.T) {
	s := load(t)
	original := s.Document()
	originalJSON := string(lottie.Marshal(original))

	require.True(t, s.Recolor(0, colour.Unit{0, 0, 1}))
	assert.Equal(t, 2, s.Generation())

	// The previous document is untouched.
	assert.Equal(t, originalJSON, string(lottie.Marshal(original)))

	groups := s.Groups()
	assert.Equal(t, colour.Unit{0, 0, 1}, groups[0].Value)
	assert.Equal(t, colour.Unit{1, 0, 0, 1}, groups[0].OriginalValue)

	assert.Equal(t,
		`{"assets":[],"layers":[{"ty":"fl","c":{"a":0,"k":[0,0,1,1]}},{"ty":"fl","c":[0,0,1]},{"ty":"fl","c":[0,1,0,0.5]}]}`,
		string(lottie.Marshal(s.Document())))
}

func TestRecolorTwice(t *testing.T) {
	s := load(t)
	require.True(t, s.RecolorHex(1, "#ff00ff"))
	require.True(t, s.RecolorHex(1, "#000000"))
	assert.Equal(t, 3, s.Generation())

	groups := s.Groups()
	assert.Equal(t, colour.Unit{0, 0, 0}, groups[1].Value)

	v, ok := lottie.Resolve(s.Document(), lottie.Path{"layers", "2", "c"})
	require.True(t, ok)
	got, _ := lottie.Floats(v)
	assert.Equal(t, []float64{0, 0, 0, 0.5}, got)
}

func TestRecolorStaleIndex(t *testing.T) {
	s := load(t)
	before := s.Document()

	assert.False(t, s.Recolor(2, colour.Unit{0, 0, 1}))
	assert.False(t, s.Recolor(-1, colour.Unit{0, 0, 1}))
	assert.False(t, s.Recolor(0, colour.Unit{0, 0}))
	assert.False(t, s.Recolor(0, nil))
	assert.Equal(t, colour.Unit{1, 0, 0, 1}, s.Groups()[0].Value)
	assert.Same(t, before.(*lottie.Object), s.Document().(*lottie.Object))
	assert.Equal(t, 1, s.Generation())
}

func TestGroupsReturnsCopy(t *testing.T) {
	s := load(t)
	groups := s.Groups()
	groups[0].Value[0] = 0.25
	groups[0].Fills = nil

	again := s.Groups()
	assert.Equal(t, colour.Unit{1, 0, 0, 1}, again[0].Value)
	assert.Len(t, again[0].Fills, 2)
}

func TestLoadWithErrorKeepsState(t *testing.T) {
	s := load(t)
	before := s.Document()
	errMissing := errors.New("fragment not found")

	err := s.LoadWith(func() (lottie.Value, error) {
		return nil, errMissing
	})
	require.ErrorIs(t, err, errMissing)
	assert.Same(t, before.(*lottie.Object), s.Document().(*lottie.Object))
	assert.Equal(t, 1, s.Generation())
	assert.Len(t, s.Groups(), 2)
}

func TestLoadWithSuccess(t *testing.T) {
	s := load(t)
	err := s.LoadWith(func() (lottie.Value, error) {
		return lottie.Parse([]byte(`{"layers":[{"ty":"fl","c":[0,0,0]}]}`))
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Generation())
	assert.Len(t, s.Groups(), 1)
}

func TestReset(t *testing.T) {
	s := load(t)
	s.Reset()
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Groups())
	assert.Equal(t, 2, s.Generation())
}

func TestApplyOptions(t *testing.T) {
	v, err := lottie.Parse([]byte(`{"ty":"fl","c":[1,0,0]}`))
	require.NoError(t, err)

	s := New(WithApplyOptions(fill.WithOpaqueAlpha()))
	s.Load(v)
	require.True(t, s.Recolor(0, colour.Unit{0, 1, 0}))
	assert.Equal(t, `{"ty":"fl","c":[0,1,0,1]}`, string(lottie.Marshal(s.Document())))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "session",
		Output: &buf,
		Level:  hclog.Debug,
	})

	v, err := lottie.Parse([]byte(doc))
	require.NoError(t, err)

	s := New(WithLogger(logger))
	s.Load(v)
	s.Recolor(0, colour.Unit{0, 0, 1})

	assert.Contains(t, buf.String(), "document loaded")
	assert.Contains(t, buf.String(), "group recoloured")
}
