package colour

import (
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest). Channels are clamped
// to [0, 1] first.
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(u Unit) float64 {
	if !u.Valid() {
		return 0
	}

	// Apply gamma correction.
	r := gammaCorrect(clampUnit(u[0]))
	g := gammaCorrect(clampUnit(u[1]))
	b := gammaCorrect(clampUnit(u[2]))

	// Calculate luminance using WCAG formula.
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 Unit) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

var (
	black = Unit{0, 0, 0}
	white = Unit{1, 1, 1}
)

// TextColour returns black or white, whichever reads better on top of bg.
func TextColour(bg Unit) Unit {
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black.Clone()
	}
	return white.Clone()
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
