package colour

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	noisy := 0.1
	noisy += 0.2

	tests := []struct {
		name string
		a, b Unit
		want bool
	}{
		{name: "float noise", a: Unit{noisy, 0, 0}, b: Unit{0.3, 0, 0}, want: true},
		{name: "identical", a: Unit{1, 0, 0}, b: Unit{1, 0, 0}, want: true},
		{name: "alpha ignored", a: Unit{1, 0, 0, 1}, b: Unit{1, 0, 0, 0.2}, want: true},
		{name: "mixed arity", a: Unit{0.5, 0.5, 0.5}, b: Unit{0.5, 0.5, 0.5, 0.7}, want: true},
		{name: "within tolerance", a: Unit{0.5, 0.5, 0.5}, b: Unit{0.50009, 0.5, 0.5}, want: true},
		{name: "at tolerance", a: Unit{0.5, 0.5, 0.5}, b: Unit{0.5002, 0.5, 0.5}, want: false},
		{name: "different blue", a: Unit{0, 0, 0}, b: Unit{0, 0, 0.01}, want: false},
		{name: "both too short", a: Unit{1, 0}, b: Unit{1, 0}, want: false},
		{name: "one too short", a: Unit{1, 0, 0}, b: Unit{1, 0}, want: false},
		{name: "empty", a: Unit{}, b: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		name string
		in   Unit
		want string
	}{
		{name: "black", in: Unit{0, 0, 0}, want: "#000000"},
		{name: "white with alpha", in: Unit{1, 1, 1, 0.5}, want: "#ffffff"},
		{name: "red", in: Unit{1, 0, 0}, want: "#ff0000"},
		{name: "single digit padded", in: Unit{1.0 / 255, 0, 15.0 / 255}, want: "#01000f"},
		{name: "rounds down", in: Unit{0.2, 0.4, 0.6}, want: "#336699"},
		// 127.5 is an exact tie and rounds away from zero.
		{name: "half rounds up", in: Unit{127.5 / 255, 0, 0}, want: "#800000"},
		{name: "just below half", in: Unit{127.4 / 255, 0, 0}, want: "#7f0000"},
		{name: "above range clamps", in: Unit{1.5, 0, 0}, want: "#ff0000"},
		{name: "below range clamps", in: Unit{-0.2, 0, 0}, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToHex(tt.in))
		})
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Unit
	}{
		{name: "with hash", in: "#ff0000", want: Unit{1, 0, 0}},
		{name: "without hash", in: "00ff00", want: Unit{0, 1, 0}},
		{name: "upper case", in: "#0000FF", want: Unit{0, 0, 1}},
		{name: "mid grey", in: "#808080", want: Unit{128.0 / 255, 128.0 / 255, 128.0 / 255}},
		{name: "not a colour", in: "not-a-color", want: Unit{0, 0, 0}},
		{name: "shorthand rejected", in: "#fff", want: Unit{0, 0, 0}},
		{name: "too long", in: "#ff00ff00", want: Unit{0, 0, 0}},
		{name: "bad digit", in: "#gg0000", want: Unit{0, 0, 0}},
		{name: "double hash", in: "##ff0000", want: Unit{0, 0, 0}},
		{name: "empty", in: "", want: Unit{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HexToRGB(tt.in)
			require.Len(t, got, 3)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseHexError(t *testing.T) {
	_, err := ParseHex("nope")
	require.Error(t, err)

	u, err := ParseHex("#336699")
	require.NoError(t, err)
	assert.Equal(t, "#336699", u.Hex())
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#1a2b3c", "#ABCDEF", "7f7f7f", "#010203"} {
		t.Run(hex, func(t *testing.T) {
			want := "#" + strings.ToLower(strings.TrimPrefix(hex, "#"))
			assert.Equal(t, want, RGBToHex(HexToRGB(hex)))
		})
	}
}

func TestUnitRoundTripWithinQuantisation(t *testing.T) {
	for _, u := range []Unit{{0.1, 0.2, 0.3}, {0.999, 0.001, 0.5}, {0.33333, 0.66666, 1}} {
		got := HexToRGB(RGBToHex(u))
		assert.InDeltaSlice(t, []float64(u), []float64(got), 1.0/255)
	}
}

func TestUnitAccessors(t *testing.T) {
	u := RGBA(0.1, 0.2, 0.3, 0.4)
	assert.True(t, u.Valid())
	assert.True(t, u.HasAlpha())
	assert.InDelta(t, 0.4, u.Alpha(), 1e-12)
	assert.Equal(t, Unit{0.1, 0.2, 0.3}, u.RGB())

	rgb := Unit{0.1, 0.2, 0.3}
	assert.False(t, rgb.HasAlpha())
	assert.InDelta(t, 1.0, rgb.Alpha(), 1e-12)

	c := u.Clone()
	c[0] = 1
	assert.InDelta(t, 0.1, u[0], 1e-12)

	assert.False(t, Unit{1, 0}.Valid())
}

func TestContrast(t *testing.T) {
	assert.InDelta(t, 21.0, ContrastRatio(Unit{0, 0, 0}, Unit{1, 1, 1}), 0.01)
	assert.InDelta(t, 1.0, ContrastRatio(Unit{0.5, 0.5, 0.5}, Unit{0.5, 0.5, 0.5}), 0.001)

	assert.Equal(t, Unit{0, 0, 0}, TextColour(Unit{1, 1, 0.8}))
	assert.Equal(t, Unit{1, 1, 1}, TextColour(Unit{0.1, 0.1, 0.3}))
}

func TestFormatChannels(t *testing.T) {
	assert.Equal(t, "[1.000 0.500 0.000 1.000]", FormatChannels(Unit{1, 0.5, 0, 1}))
}
