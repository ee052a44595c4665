package page

import "errors"

// Page package errors.
var (
	// ErrInvalidPath indicates a page path that is empty or lacks a leading slash.
	ErrInvalidPath = errors.New("page: invalid path")

	// ErrNilBuilder indicates a page without a builder.
	ErrNilBuilder = errors.New("page: nil builder")

	// ErrDuplicatePage indicates a page path registered twice.
	ErrDuplicatePage = errors.New("page: duplicate path")
)
