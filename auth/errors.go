package auth

import "errors"

// Auth package errors.
var (
	// ErrWeakSecret indicates a signing secret shorter than MinSecretLen.
	ErrWeakSecret = errors.New("auth: signing secret too short")

	// ErrInvalidToken indicates a token that failed parsing or verification.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrLoginMethod indicates an empty login method or a nil login handler.
	ErrLoginMethod = errors.New("auth: invalid login method")
)
