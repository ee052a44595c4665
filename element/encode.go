package element

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/youssefsiam38/adminui/callback"
)

// Keys of an encoded callback reference.
const (
	CallbackIDKey   = "cb_uuid"
	CallbackRoleKey = "role"
	CallbackCallKey = "endpoint"

	// PageActionEndpoint is the endpoint the frontend posts callback
	// invocations to.
	PageActionEndpoint = "page_action"
)

// Encoder converts element trees into JSON-compatible documents built from
// map[string]any, []any and primitives.
type Encoder struct {
	registry *callback.Registry
}

// NewEncoder creates an encoder that resolves Action values through reg.
// With a nil registry, encoding a tree that contains an Action fails.
func NewEncoder(reg *callback.Registry) *Encoder {
	return &Encoder{registry: reg}
}

// Encode converts a single value.
func (enc *Encoder) Encode(v Value) (any, error) {
	st := &encodeState{enc: enc, active: make(map[*Element]bool)}
	return st.value(v, "$", "")
}

// EncodeElement converts an element into its document form: the type tag
// under TypeKey plus every property flattened into the same object.
func (enc *Encoder) EncodeElement(e *Element) (map[string]any, error) {
	st := &encodeState{enc: enc, active: make(map[*Element]bool)}
	return st.element(e, "$")
}

// EncodeElements converts a sequence of elements, preserving order.
// The result is never nil.
func (enc *Encoder) EncodeElements(es []*Element) ([]any, error) {
	st := &encodeState{enc: enc, active: make(map[*Element]bool)}
	return st.elements(es, "$")
}

// EncodeResult converts an arbitrary callback result. Element values are
// expanded; anything else must be JSON-marshalable and is passed through as
// raw JSON. Elements nested in plain Go values are rejected with
// ErrUnsupportedValue; use List, Map or Elements to nest them.
func (enc *Encoder) EncodeResult(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *Element:
		if x == nil {
			return nil, nil
		}
		return enc.EncodeElement(x)
	case Element:
		return enc.EncodeElement(&x)
	case []*Element:
		return enc.EncodeElements(x)
	case Value:
		return enc.Encode(x)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %v", ErrUnsupportedValue, v, err)
	}
	return json.RawMessage(b), nil
}

type encodeState struct {
	enc *Encoder
	// active holds the elements on the current path, to detect cycles.
	active map[*Element]bool
}

func (st *encodeState) element(e *Element, path string) (map[string]any, error) {
	if e == nil {
		return nil, fmt.Errorf("%w at %s", ErrNilValue, path)
	}
	if st.active[e] {
		return nil, fmt.Errorf("%w at %s", ErrCycle, path)
	}
	st.active[e] = true
	defer delete(st.active, e)

	doc := make(map[string]any, len(e.props)+1)
	doc[TypeKey] = e.typ
	for _, name := range e.Names() {
		if name == TypeKey {
			return nil, fmt.Errorf("%w: %q at %s", ErrReservedProperty, name, path)
		}
		v, err := st.value(e.props[name], path+"."+name, name)
		if err != nil {
			return nil, err
		}
		doc[name] = v
	}
	return doc, nil
}

func (st *encodeState) elements(es []*Element, path string) ([]any, error) {
	out := make([]any, 0, len(es))
	for i, e := range es {
		doc, err := st.element(e, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// value converts v; role is the name of the enclosing property, if any.
func (st *encodeState) value(v Value, path, role string) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w at %s", ErrNilValue, path)
	case null:
		return nil, nil
	case String:
		return string(x), nil
	case Int:
		return int64(x), nil
	case Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v at %s", ErrUnsupportedValue, f, path)
		}
		return f, nil
	case Bool:
		return bool(x), nil
	case *Element:
		return st.element(x, path)
	case Elements:
		return st.elements(x, path)
	case List:
		out := make([]any, 0, len(x))
		for i, item := range x {
			iv, err := st.value(item, path+"["+strconv.Itoa(i)+"]", role)
			if err != nil {
				return nil, err
			}
			out = append(out, iv)
		}
		return out, nil
	case Map:
		out := make(map[string]any, len(x))
		for k, item := range x {
			iv, err := st.value(item, path+"."+k, k)
			if err != nil {
				return nil, err
			}
			out[k] = iv
		}
		return out, nil
	case action:
		if x.cb == nil {
			return nil, fmt.Errorf("%w at %s", ErrNilValue, path)
		}
		if st.enc.registry == nil {
			return nil, fmt.Errorf("%w at %s", ErrNoRegistry, path)
		}
		return map[string]any{
			CallbackIDKey:   st.enc.registry.ID(x.cb),
			CallbackRoleKey: role,
			CallbackCallKey: PageActionEndpoint,
		}, nil
	}
	return nil, fmt.Errorf("%w: %T at %s", ErrUnsupportedValue, v, path)
}
