package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB quantises the first three channels of u to 8 bits. Each channel is
// scaled by 255 and rounded half away from zero; results outside 0..255
// are clamped. Missing channels read as 0.
func ToRGB(u Unit) RGB {
	channel := func(i int) uint8 {
		if i >= len(u) {
			return 0
		}
		return clampByte(math.Round(u[i] * 255))
	}
	return RGB{R: channel(0), G: channel(1), B: channel(2)}
}

// Unit returns the colour as three channels in [0, 1].
func (rgb RGB) Unit() Unit {
	return Unit{float64(rgb.R) / 255, float64(rgb.G) / 255, float64(rgb.B) / 255}
}

// RGBToHex converts a colour to a lowercase "#rrggbb" string.
func RGBToHex(u Unit) string {
	return ToRGB(u).Hex()
}

// HexToRGB parses "#rrggbb" or "rrggbb" (any case) into three channels in
// [0, 1]. Malformed input yields black rather than an error.
func HexToRGB(hex string) Unit {
	u, err := ParseHex(hex)
	if err != nil {
		return Unit{0, 0, 0}
	}
	return u
}

// ParseHex is HexToRGB with an error for malformed input.
func ParseHex(hex string) (Unit, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 || !isHexDigits(digits) {
		return nil, fmt.Errorf("invalid hex colour %q: must be 6 hex digits", hex)
	}

	// colorful accepts shorthand and needs the hash, so it only sees the
	// already validated long form.
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return Unit{c.R, c.G, c.B}, nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func clampByte(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
