package layout

import "strings"

// Frame is the outcome of a layout pass.
type Frame struct {
	Width      int
	BodyHeight int
}

// Engine divides the screen between a top dock, the body and a bottom dock.
type Engine struct {
	top, bottom   *Dock
	width, height int
}

// NewEngine creates an engine for the given docks. Either may be empty.
func NewEngine(top, bottom *Dock) *Engine {
	if top == nil {
		top = NewDock()
	}
	if bottom == nil {
		bottom = NewDock()
	}
	return &Engine{top: top, bottom: bottom}
}

// Resize records the screen size and lays the docks out again.
func (e *Engine) Resize(width, height int) Frame {
	e.width, e.height = width, height
	return e.Layout()
}

// Layout pushes the width into both docks and gives the body whatever rows
// they leave, never less than one. Call it again whenever a dock's height
// may have changed.
func (e *Engine) Layout() Frame {
	e.top.setWidth(e.width)
	e.bottom.setWidth(e.width)

	body := e.height - e.top.Height() - e.bottom.Height()
	return Frame{Width: e.width, BodyHeight: max(body, 1)}
}

// Compose places body between the docks. Empty docks take no rows.
func (e *Engine) Compose(body string) string {
	rows := make([]string, 0, 3)
	if e.top.Height() > 0 {
		rows = append(rows, e.top.View())
	}
	rows = append(rows, body)
	if e.bottom.Height() > 0 {
		rows = append(rows, e.bottom.View())
	}
	return strings.Join(rows, "\n")
}
