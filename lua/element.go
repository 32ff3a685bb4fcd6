package lua

import (
	"github.com/drake/boxes/element"
	glua "github.com/yuin/gopher-lua"
)

const luaElementTypeName = "element"

// registerElementType registers the element type with the Lua state.
// Call this once during engine initialization.
func registerElementType(L *glua.LState) {
	mt := L.NewTypeMetatable(luaElementTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), elementMethods))
	L.SetField(mt, "__tostring", L.NewFunction(elementRender))
	L.SetField(mt, "__len", L.NewFunction(elementLen))
}

// newElement wraps an element.Element in userdata.
func newElement(L *glua.LState, el element.Element) *glua.LUserData {
	ud := L.NewUserData()
	ud.Value = el
	L.SetMetatable(ud, L.GetTypeMetatable(luaElementTypeName))
	return ud
}

// toElement unwraps v if it is element userdata.
func toElement(v glua.LValue) (element.Element, bool) {
	ud, ok := v.(*glua.LUserData)
	if !ok {
		return nil, false
	}
	el, ok := ud.Value.(element.Element)
	return el, ok
}

// checkElement retrieves an element from Lua userdata at the given stack position.
func checkElement(L *glua.LState, n int) element.Element {
	if el, ok := toElement(L.Get(n)); ok {
		return el
	}
	L.ArgError(n, "element expected")
	return nil
}

// elementMethods defines the methods available on element objects in Lua.
var elementMethods = map[string]glua.LGFunction{
	"dimensions": elementDimensions,
	"width":      elementWidth,
	"height":     elementHeight,
	"render":     elementRender,
	"kind":       elementKind,
	"children":   elementChildren,
	"content":    elementContent,
}

// elementDimensions returns width and height.
// Usage: local w, h = el:dimensions()
func elementDimensions(L *glua.LState) int {
	d := checkElement(L, 1).Dimensions()
	L.Push(glua.LNumber(d.Width))
	L.Push(glua.LNumber(d.Height))
	return 2
}

// Usage: el:width()
func elementWidth(L *glua.LState) int {
	L.Push(glua.LNumber(checkElement(L, 1).Dimensions().Width))
	return 1
}

// Usage: el:height()
func elementHeight(L *glua.LState) int {
	L.Push(glua.LNumber(checkElement(L, 1).Dimensions().Height))
	return 1
}

// elementRender returns the rendered element, escape sequences included.
// Usage: el:render() or tostring(el)
func elementRender(L *glua.LState) int {
	L.Push(glua.LString(element.String(checkElement(L, 1))))
	return 1
}

// Usage: el:kind()
func elementKind(L *glua.LState) int {
	L.Push(glua.LString(element.KindOf(checkElement(L, 1)).String()))
	return 1
}

// elementChildren returns a container's children as a list. Other
// elements have none.
// Usage: for _, c in ipairs(el:children()) do ... end
func elementChildren(L *glua.LState) int {
	tbl := L.NewTable()
	if c, ok := checkElement(L, 1).(element.Container); ok {
		for _, child := range c.Children() {
			tbl.Append(newElement(L, child))
		}
	}
	L.Push(tbl)
	return 1
}

// elementContent returns the payload of a text or heading, nil for a
// container.
// Usage: el:content()
func elementContent(L *glua.LState) int {
	switch el := checkElement(L, 1).(type) {
	case element.Text:
		L.Push(glua.LString(el.Content()))
	case element.Heading:
		L.Push(glua.LString(el.Text().Content()))
	default:
		L.Push(glua.LNil)
	}
	return 1
}

// elementLen counts a container's children.
// Usage: #el
func elementLen(L *glua.LState) int {
	n := 0
	if c, ok := checkElement(L, 1).(element.Container); ok {
		n = c.Len()
	}
	L.Push(glua.LNumber(n))
	return 1
}
