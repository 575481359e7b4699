// SPDX-License-Identifier: Apache-2.0

// Package robotxml holds a minimal mutable element tree for Robot Framework
// output documents. Unknown elements and attributes are preserved so that a
// fragment copied out of one document can be written into another unchanged.
package robotxml

import "encoding/xml"

// Element is one node of the tree. Text holds the character data of the
// element; whitespace-only text is dropped for elements that have children.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// NewElement creates an element with the given attributes, in order.
func NewElement(name string, attrs ...xml.Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// A is shorthand for building an attribute.
func A(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Attr returns the value of the named attribute, or "" when it is absent.
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr returns the value of the named attribute and whether it exists.
func (e *Element) LookupAttr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the named attribute or appends it.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Local == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, A(name, value))
}

// CopyAttrs returns an independent copy of the attribute list.
func (e *Element) CopyAttrs() []xml.Attr {
	if e.Attrs == nil {
		return nil
	}
	out := make([]xml.Attr, len(e.Attrs))
	copy(out, e.Attrs)
	return out
}

// Append adds children in order.
func (e *Element) Append(children ...*Element) {
	e.Children = append(e.Children, children...)
}

// AddChild creates a new child element, appends it and returns it.
func (e *Element) AddChild(name string, attrs ...xml.Attr) *Element {
	child := NewElement(name, attrs...)
	e.Children = append(e.Children, child)
	return child
}

// Clone returns a deep copy. The copy shares no nodes or attribute slices
// with the receiver.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		Name:  e.Name,
		Attrs: e.CopyAttrs(),
		Text:  e.Text,
	}
	if len(e.Children) > 0 {
		c.Children = make([]*Element, len(e.Children))
		for i, child := range e.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the direct children with the given name in document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits the descendants of e in document order (e itself excluded).
// Returning false from fn skips the subtree below the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	for _, c := range e.Children {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// Descendants returns every descendant with the given name in document order.
func (e *Element) Descendants(name string) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if el.Name == name {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Find returns the first descendant with the given name, or nil.
func (e *Element) Find(name string) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if found != nil {
			return false
		}
		if el.Name == name {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindFunc returns the element itself or the first descendant matching fn.
func (e *Element) FindFunc(fn func(*Element) bool) *Element {
	if fn(e) {
		return e
	}
	var found *Element
	e.Walk(func(el *Element) bool {
		if found != nil {
			return false
		}
		if fn(el) {
			found = el
			return false
		}
		return true
	})
	return found
}
