package lua

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"

	"github.com/drake/boxes/element"
)

// registerElementFuncs registers the boxes.* constructors.
func (e *Engine) registerElementFuncs() {
	// boxes.text(s): Plain text
	e.L.SetField(e.boxesTable, "text", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(newElement(L, element.NewText(L.CheckString(1))))
		return 1
	}))

	// boxes.heading(s): Bold text
	e.L.SetField(e.boxesTable, "heading", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(newElement(L, element.NewHeading(L.CheckString(1))))
		return 1
	}))

	// boxes.container({a, b, ...}) or boxes.container(a, b, ...): Bordered list
	e.L.SetField(e.boxesTable, "container", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(newElement(L, element.NewContainer(checkChildren(L)...)))
		return 1
	}))

	// boxes.show(el, ...): Append elements to the document
	e.L.SetField(e.boxesTable, "show", e.L.NewFunction(func(L *glua.LState) int {
		for i := 1; i <= L.GetTop(); i++ {
			e.doc = append(e.doc, checkElement(L, i))
		}
		return 0
	}))
}

// checkChildren reads container children either from a single list
// argument or from the argument list itself.
func checkChildren(L *glua.LState) []element.Element {
	if tbl, ok := L.Get(1).(*glua.LTable); ok && L.GetTop() == 1 {
		n := tbl.Len()
		children := make([]element.Element, 0, n)
		for i := 1; i <= n; i++ {
			el, ok := toElement(tbl.RawGetInt(i))
			if !ok {
				L.ArgError(1, fmt.Sprintf("item %d is not an element", i))
				return nil
			}
			children = append(children, el)
		}
		return children
	}

	children := make([]element.Element, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		children = append(children, checkElement(L, i))
	}
	return children
}
