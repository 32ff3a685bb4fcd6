package widget

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/drake/boxes/text"
)

func TestBarTwoPart(t *testing.T) {
	b := NewBar(lipgloss.NewStyle())
	b.SetWidth(12)
	b.Set("left", "", "right")

	assert.Equal(t, "left   right", text.StripANSI(b.View()))
	assert.Equal(t, 1, b.Height())
}

func TestBarThreePart(t *testing.T) {
	b := NewBar(lipgloss.NewStyle())
	b.SetWidth(20)
	b.Set("ab", "mid", "yz")

	got := text.StripANSI(b.View())
	assert.Equal(t, 20, text.Width(got))
	assert.Equal(t, "ab      mid       yz", got)
}

func TestBarNarrowKeepsOneSpace(t *testing.T) {
	b := NewBar(lipgloss.NewStyle())
	b.SetWidth(3)
	b.Set("left", "", "right")

	assert.Equal(t, "left right", text.StripANSI(b.View()))
}

func TestBarHiddenWhenEmpty(t *testing.T) {
	b := NewBar(lipgloss.NewStyle())
	assert.Equal(t, 0, b.Height())
}
