package adminui

import "errors"

// Common errors
var (
	// ErrInvalidConfig is returned when the application configuration is invalid
	ErrInvalidConfig = errors.New("adminui: invalid configuration")

	// ErrNoUpload is returned when an upload value carries no file name
	ErrNoUpload = errors.New("adminui: no uploaded file")
)
