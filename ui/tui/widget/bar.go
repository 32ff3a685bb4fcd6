package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/boxes/text"
	"github.com/drake/boxes/ui/tui/layout"
)

// Compile-time check that Bar implements layout.Renderer
var _ layout.Renderer = (*Bar)(nil)

// Bar renders a single row with left/center/right sections.
type Bar struct {
	left, center, right string
	style               lipgloss.Style
	width               int
}

// NewBar creates a new bar rendered with style.
func NewBar(style lipgloss.Style) *Bar {
	return &Bar{style: style}
}

// Set replaces the bar's sections. Sections may carry their own styling.
func (b *Bar) Set(left, center, right string) {
	b.left = left
	b.center = center
	b.right = right
}

// View implements layout.Renderer.
func (b *Bar) View() string {
	leftLen := text.VisibleWidth(b.left)
	centerLen := text.VisibleWidth(b.center)
	rightLen := text.VisibleWidth(b.right)

	var row string
	if b.center != "" {
		// Three-part layout
		leftPad := (b.width-centerLen)/2 - leftLen
		if leftPad < 1 {
			leftPad = 1
		}
		rightPad := b.width - leftLen - leftPad - centerLen - rightLen
		if rightPad < 1 {
			rightPad = 1
		}
		row = b.left + strings.Repeat(" ", leftPad) + b.center + strings.Repeat(" ", rightPad) + b.right
	} else {
		// Two-part layout
		row = text.Pad(b.left, max(b.width-rightLen, leftLen+1)) + b.right
	}
	return b.style.Render(row)
}

// SetWidth implements layout.Renderer.
func (b *Bar) SetWidth(w int) {
	b.width = w
}

// Height implements layout.Renderer. An empty bar is hidden.
func (b *Bar) Height() int {
	if b.left == "" && b.center == "" && b.right == "" {
		return 0
	}
	return 1
}
