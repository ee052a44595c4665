package callback

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Callback wraps a backend function so it can be referenced from a serialized
// element tree. Go functions are not comparable, so the *Callback pointer is
// the identity a Registry keys on: wrap a function once and reuse the result.
//
// Supported signatures take any number of JSON-decodable parameters,
// optionally preceded by a context.Context, and return nothing, a value,
// an error, or a value and an error:
//
//	func(data FormData) *element.Element
//	func(ctx context.Context, id string, enabled bool) (any, error)
type Callback struct {
	fn      reflect.Value
	name    string
	params  []reflect.Type
	withCtx bool
	value   bool
	err     bool
}

// Func wraps fn. It returns ErrNotFunc when fn is not a function and
// ErrUnsupportedSignature when its signature cannot be invoked from JSON
// arguments.
func Func(fn any) (*Callback, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: got %T", ErrNotFunc, fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic functions are not supported", ErrUnsupportedSignature)
	}

	cb := &Callback{fn: v, name: funcName(v)}

	in := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		cb.withCtx = true
		in = 1
	}
	for ; in < t.NumIn(); in++ {
		p := t.In(in)
		if p.Kind() == reflect.Func || p.Kind() == reflect.Chan || p.Kind() == reflect.UnsafePointer {
			return nil, fmt.Errorf("%w: parameter %d of kind %s cannot be decoded from JSON",
				ErrUnsupportedSignature, in, p.Kind())
		}
		cb.params = append(cb.params, p)
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			cb.err = true
		} else {
			cb.value = true
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("%w: second result must be error, got %s", ErrUnsupportedSignature, t.Out(1))
		}
		cb.value = true
		cb.err = true
	default:
		return nil, fmt.Errorf("%w: at most two results are allowed", ErrUnsupportedSignature)
	}

	return cb, nil
}

// MustFunc is like Func but panics on error.
// It is intended for package-level callback declarations.
func MustFunc(fn any) *Callback {
	cb, err := Func(fn)
	if err != nil {
		panic(err)
	}
	return cb
}

// Name returns the wrapped function's name for diagnostics.
func (c *Callback) Name() string {
	return c.name
}

// Arity returns the number of JSON arguments the callback consumes.
// An injected context.Context is not counted.
func (c *Callback) Arity() int {
	return len(c.params)
}

// Call decodes the leading Arity() elements of args into the callback's
// parameters and invokes it. Trailing extra arguments are ignored; fewer
// arguments than parameters is an ErrMissingArguments error.
//
// A callback that returns nothing, or returns a nil value, yields a nil result.
func (c *Callback) Call(ctx context.Context, args []json.RawMessage) (any, error) {
	if len(args) < len(c.params) {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrMissingArguments, c.name, len(c.params), len(args))
	}

	in := make([]reflect.Value, 0, len(c.params)+1)
	if c.withCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}
	for i, p := range c.params {
		ptr := reflect.New(p)
		if err := json.Unmarshal(args[i], ptr.Interface()); err != nil {
			return nil, fmt.Errorf("%w: argument %d of %s: %v", ErrInvalidArgument, i, c.name, err)
		}
		in = append(in, ptr.Elem())
	}

	out := c.fn.Call(in)

	var (
		result any
		err    error
	)
	if c.err {
		if e := out[len(out)-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
	}
	if c.value && !isNil(out[0]) {
		result = out[0].Interface()
	}
	return result, err
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func funcName(v reflect.Value) string {
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return v.Type().String()
}
