package element

import (
	"io"
	"strings"
)

// Document is the ordered list of top-level elements produced by a script.
type Document []Element

// Render writes each element followed by a newline.
func (d Document) Render(dst io.Writer) error {
	w := &writer{w: dst}
	for _, e := range d {
		e.render(w)
		w.WriteString("\n")
	}
	return w.err
}

// String renders the whole document into a string.
func (d Document) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}
