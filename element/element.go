// Package element lays out and renders trees of terminal elements.
//
// An element tree is built bottom-up from Text, Heading and Container values
// and is immutable once constructed. Dimensions are derived from content on
// every call and never cached, so a tree can be measured and rendered any
// number of times with identical results.
package element

import (
	"io"
	"strings"

	"github.com/drake/boxes/text"
)

// Dimensions is the bounding box of an element, measured in characters.
type Dimensions struct {
	Width  int
	Height int
}

// Element is a drawable node. The set of implementations is closed:
// Text, Heading and Container.
type Element interface {
	// Dimensions computes the element's bounding box.
	Dimensions() Dimensions
	// Render writes the element to w and reports the first write error.
	Render(w io.Writer) error

	render(w *writer)
}

// Compile-time checks that the variants implement Element
var (
	_ Element = Text{}
	_ Element = Heading{}
	_ Element = Container{}
)

// Text is a run of unstyled characters.
type Text struct {
	s string
}

// NewText creates a Text element holding s.
func NewText(s string) Text {
	return Text{s: s}
}

// Content returns the text payload.
func (t Text) Content() string {
	return t.s
}

// Dimensions implements Element. Text has no height of its own.
func (t Text) Dimensions() Dimensions {
	return Dimensions{Width: text.Length(t.s), Height: 0}
}

// Render implements Element.
func (t Text) Render(w io.Writer) error {
	return renderTo(w, t)
}

func (t Text) render(w *writer) {
	w.WriteString(t.s)
}

// Heading is a Text rendered in bold.
type Heading struct {
	text Text
}

// NewHeading creates a Heading element holding s.
func NewHeading(s string) Heading {
	return Heading{text: NewText(s)}
}

// Text returns the wrapped Text.
func (h Heading) Text() Text {
	return h.text
}

// Dimensions implements Element. The bold markers are not counted.
func (h Heading) Dimensions() Dimensions {
	return h.text.Dimensions()
}

// Render implements Element.
func (h Heading) Render(w io.Writer) error {
	return renderTo(w, h)
}

func (h Heading) render(w *writer) {
	w.WriteString(text.Bold)
	h.text.render(w)
	w.WriteString(text.Reset)
}

// Container draws a border around an ordered list of children, one child
// per line.
type Container struct {
	children []Element
}

// NewContainer creates a Container that owns the given children.
func NewContainer(children ...Element) Container {
	owned := make([]Element, len(children))
	copy(owned, children)
	return Container{children: owned}
}

// Children returns a copy of the container's children.
func (c Container) Children() []Element {
	out := make([]Element, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of children.
func (c Container) Len() int {
	return len(c.children)
}

// Dimensions implements Element.
//
// Width is the widest child plus two border columns. Height is the sum of
// the children's heights; the border rows and the row each child is
// printed on are not counted.
func (c Container) Dimensions() Dimensions {
	maxWidth, height := 0, 0
	for _, child := range c.children {
		d := child.Dimensions()
		if d.Width > maxWidth {
			maxWidth = d.Width
		}
		height += d.Height
	}
	return Dimensions{Width: maxWidth + 2, Height: height}
}

// Render implements Element.
func (c Container) Render(w io.Writer) error {
	return renderTo(w, c)
}

func (c Container) render(w *writer) {
	inner := c.Dimensions().Width - 2
	border := c.borderLine(inner)

	// The top border is a line of its own.
	w.WriteString(border)
	w.WriteString("\n")
	for _, child := range c.children {
		w.WriteString("|")
		child.render(w)
		w.pad(inner - child.Dimensions().Width)
		w.WriteString("|\n")
	}
	w.WriteString(border)
}

func (c Container) borderLine(inner int) string {
	return "+" + strings.Repeat("-", inner) + "+"
}

// Kind names an element variant.
type Kind int

const (
	KindText Kind = iota
	KindHeading
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHeading:
		return "heading"
	case KindContainer:
		return "container"
	}
	return "unknown"
}

// KindOf reports which variant e is.
func KindOf(e Element) Kind {
	switch e.(type) {
	case Text:
		return KindText
	case Heading:
		return KindHeading
	case Container:
		return KindContainer
	}
	panic("element: unknown element type")
}

// String renders e into a string.
func String(e Element) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = e.Render(&sb)
	return sb.String()
}
