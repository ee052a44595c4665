package element

import (
	"fmt"
	"maps"
	"slices"
)

// TypeKey is the property under which an element's type tag is serialized.
const TypeKey = "type"

// Element is a serializable UI node: a type tag and a set of named
// properties. Elements are immutable once constructed.
type Element struct {
	typ   string
	props map[string]Value
}

// Prop is a named property value.
type Prop struct {
	Name  string
	Value Value
}

// Attr builds a Prop.
func Attr(name string, v Value) Prop {
	return Prop{Name: name, Value: v}
}

// New creates an element of the given type. Later props override earlier
// props with the same name.
func New(typ string, props ...Prop) *Element {
	e := &Element{typ: typ, props: make(map[string]Value, len(props))}
	for _, p := range props {
		e.props[p.Name] = p.Value
	}
	return e
}

// MarshalJSON always fails. Elements carry callbacks that only an Encoder
// can resolve, so encoding/json must never see one.
func (e Element) MarshalJSON() ([]byte, error) {
	return nil, fmt.Errorf("%w: %s element outside an Encoder", ErrUnsupportedValue, e.typ)
}

// Type returns the element's type tag.
func (e *Element) Type() string {
	return e.typ
}

// Prop returns the named property.
func (e *Element) Prop(name string) (Value, bool) {
	v, ok := e.props[name]
	return v, ok
}

// Names returns the property names in sorted order.
func (e *Element) Names() []string {
	return slices.Sorted(maps.Keys(e.props))
}

// With returns a copy of e with props added or replaced.
func (e *Element) With(props ...Prop) *Element {
	c := &Element{typ: e.typ, props: maps.Clone(e.props)}
	if c.props == nil {
		c.props = make(map[string]Value, len(props))
	}
	for _, p := range props {
		c.props[p.Name] = p.Value
	}
	return c
}
