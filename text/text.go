// Package text measures and cleans strings destined for a terminal.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// SGR sequences bracketing bold output. Golden output depends on these bytes.
const (
	Bold  = "\x1b[1m"
	Reset = "\x1b[0m"
)

// Length returns the number of characters (code points) in s. Element
// widths are character counts, not cells.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Width returns the number of terminal cells s occupies.
// For ASCII input this is the byte length.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleWidth returns the display width of a styled string (excluding ANSI codes).
func VisibleWidth(s string) int {
	return Width(StripANSI(s))
}

// Pad right-pads s with spaces to width cells. Strings already at or past
// width are returned unchanged.
func Pad(s string, width int) string {
	n := width - VisibleWidth(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
