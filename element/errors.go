package element

import "errors"

// Encoding errors. They indicate a programming mistake in page or callback
// code and are never silently dropped.
var (
	// ErrNilValue indicates a nil value or nil element inside a tree.
	ErrNilValue = errors.New("element: nil value")

	// ErrUnsupportedValue indicates a value that has no JSON form.
	ErrUnsupportedValue = errors.New("element: unsupported value")

	// ErrCycle indicates an element that contains itself.
	ErrCycle = errors.New("element: cycle in element tree")

	// ErrReservedProperty indicates a property that collides with the type tag.
	ErrReservedProperty = errors.New("element: reserved property name")

	// ErrNoRegistry indicates an Action encoded without a callback registry.
	ErrNoRegistry = errors.New("element: no callback registry for action")
)
