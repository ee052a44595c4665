package callback

import "errors"

// Callback package errors.
var (
	// ErrNotFunc indicates a non-function value was passed to Func.
	ErrNotFunc = errors.New("callback: not a function")

	// ErrUnsupportedSignature indicates a function whose parameters or
	// results cannot be bound to JSON arguments.
	ErrUnsupportedSignature = errors.New("callback: unsupported signature")

	// ErrMissingArguments indicates fewer arguments than declared parameters.
	ErrMissingArguments = errors.New("callback: missing arguments")

	// ErrInvalidArgument indicates an argument that could not be decoded
	// into its parameter type.
	ErrInvalidArgument = errors.New("callback: invalid argument")
)
