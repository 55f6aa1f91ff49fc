package colour

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 8

// DisableColourOutput can be used to disable colour output.
var DisableColourOutput = false

// SupportsANSIColours reports whether stdout is a terminal and colour output
// has not been disabled with NO_COLOR or DisableColourOutput.
func SupportsANSIColours() bool {
	if DisableColourOutput || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
}

// ColourPreviewWithText returns a colour block with text centred on it.
// The text colour is chosen to have good contrast with the background.
func ColourPreviewWithText(u Unit, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Pad or truncate text to fit width.
	if len(text) > width {
		text = text[:width]
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(u.Hex())).
		Foreground(lipgloss.Color(TextColour(u).Hex())).
		Width(width).
		Align(lipgloss.Center)

	return style.Render(text)
}

// FormatChannels formats channels with a fixed precision, e.g. "[1.000 0.500 0.000 1.000]".
func FormatChannels(u Unit) string {
	parts := make([]string, len(u))
	for i, v := range u {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
