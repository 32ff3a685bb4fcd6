package element

import (
	"fmt"
	"io"
	"strings"
)

// writer records the first write error and drops every write after it.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) WriteString(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// pad writes n spaces. A negative n means a child is wider than the
// container measured it, which can only come from a broken invariant.
func (w *writer) pad(n int) {
	if n < 0 {
		panic(fmt.Sprintf("element: negative padding %d", n))
	}
	w.WriteString(strings.Repeat(" ", n))
}

func renderTo(dst io.Writer, e Element) error {
	w := &writer{w: dst}
	e.render(w)
	return w.err
}
