// Package colour provides the colour types and conversions used when
// recolouring Lottie documents.
package colour

import (
	"fmt"
	"math"
	"slices"
)

// Tolerance is the largest per-channel difference for two colours to be
// treated as the same colour.
const Tolerance = 1e-4

// Unit is a Lottie colour: 3 (RGB) or 4 (RGBA) channels, each nominally in
// [0, 1]. Values outside that range are kept as they are.
type Unit []float64

// RGBA returns a four channel Unit.
func RGBA(r, g, b, a float64) Unit {
	return Unit{r, g, b, a}
}

// Clone returns a copy of u.
func (u Unit) Clone() Unit {
	return slices.Clone(u)
}

// Valid reports whether u has at least the three colour channels.
func (u Unit) Valid() bool {
	return len(u) >= 3
}

// HasAlpha reports whether u carries a fourth (alpha) channel.
func (u Unit) HasAlpha() bool {
	return len(u) == 4
}

// Alpha returns the alpha channel, or 1 when u has none.
func (u Unit) Alpha() float64 {
	if len(u) >= 4 {
		return u[3]
	}
	return 1
}

// RGB returns the first three channels as a new slice.
func (u Unit) RGB() Unit {
	if len(u) < 3 {
		return u.Clone()
	}
	return Unit{u[0], u[1], u[2]}
}

// Hex returns the colour as "#rrggbb". Alpha is dropped.
func (u Unit) Hex() string {
	return RGBToHex(u)
}

// String returns the channels as written in a document.
func (u Unit) String() string {
	return fmt.Sprint([]float64(u))
}

// Equal reports whether a and b are the same colour. Only the RGB channels
// are compared, each within Tolerance. A colour with fewer than three
// channels is never equal to anything.
func Equal(a, b Unit) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	for i := range 3 {
		if math.Abs(a[i]-b[i]) >= Tolerance {
			return false
		}
	}
	return true
}
