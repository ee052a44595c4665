package element

import "github.com/youssefsiam38/adminui/callback"

// Value is an element property value. The set of implementations is closed:
// String, Int, Float, Bool, Null, List, Map, *Element, Elements and the
// values returned by Action.
type Value interface {
	isValue()
}

// String is a string property.
type String string

// Int is an integer property.
type Int int64

// Float is a floating point property. NaN and infinities are rejected by
// the encoder.
type Float float64

// Bool is a boolean property.
type Bool bool

// List is an ordered sequence of values.
type List []Value

// Map is a nested object of values.
type Map map[string]Value

// Elements is an ordered sequence of child elements.
type Elements []*Element

type null struct{}

// Null is the JSON null property.
var Null Value = null{}

type action struct {
	cb *callback.Callback
}

// Action turns a callback into a property value. On encoding it is replaced
// by the identifier the callback registry assigns to cb.
func Action(cb *callback.Callback) Value {
	return action{cb: cb}
}

func (String) isValue()   {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (Bool) isValue()     {}
func (List) isValue()     {}
func (Map) isValue()      {}
func (Elements) isValue() {}
func (null) isValue()     {}
func (action) isValue()   {}
func (*Element) isValue() {}

// Strings builds a List of String values.
func Strings(ss ...string) List {
	l := make(List, len(ss))
	for i, s := range ss {
		l[i] = String(s)
	}
	return l
}

// StringMap builds a Map of String values.
func StringMap(m map[string]string) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = String(v)
	}
	return out
}

// OptionalString is String(s), or Null when s is empty.
func OptionalString(s string) Value {
	if s == "" {
		return Null
	}
	return String(s)
}
