// Package layout stacks one-row-or-more renderers above and below a
// scrolling body and works out how many rows the body gets.
package layout

import "strings"

// Renderer is anything that can sit in a dock. The engine pushes the
// terminal width down; the renderer reports how many rows it needs, and
// zero hides it.
type Renderer interface {
	SetWidth(w int)
	Height() int
	View() string
}

// Dock is a vertical stack of renderers pinned to one edge of the screen.
type Dock struct {
	rs []Renderer
}

// NewDock creates a dock holding rs, first renderer on top.
func NewDock(rs ...Renderer) *Dock {
	return &Dock{rs: rs}
}

// Height is the number of rows the visible renderers take.
func (d *Dock) Height() int {
	h := 0
	for _, r := range d.rs {
		h += r.Height()
	}
	return h
}

func (d *Dock) setWidth(w int) {
	for _, r := range d.rs {
		r.SetWidth(w)
	}
}

// View stacks the visible renderers.
func (d *Dock) View() string {
	var rows []string
	for _, r := range d.rs {
		if r.Height() > 0 {
			rows = append(rows, r.View())
		}
	}
	return strings.Join(rows, "\n")
}
