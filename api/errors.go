package api

import "errors"

// API package errors.
var (
	// ErrInvalidConfig indicates a router configuration missing required parts.
	ErrInvalidConfig = errors.New("api: invalid configuration")
)

// Error element titles and types.
const (
	TitleNotFound       = "Page not Found"
	TitleNoPermission   = "No Permission"
	TitleLoginType      = "Login type not supported"
	TitleNoAction       = "No Action"
	TitleBadRequest     = "Bad Request"
	TitleServerError    = "Something Got Wrong"
	TitleTooManyLogins  = "Too Many Attempts"
	TitleUploadDisabled = "Upload not enabled"

	MessageDefault      = "You encountered an Error"
	MessageNoPermission = "Please login first or contact your administrator"
	MessageServerError  = "The request could not be completed"
	MessageTooMany      = "Please wait a moment before trying again"

	TypeBadRequest     = "400"
	TypeForbidden      = "403"
	TypeNotFound       = "404"
	TypeTooLarge       = "413"
	TypeTooMany        = "429"
	TypeServerError    = "500"
	TypeNotImplemented = "501"
	TypeNoAction       = "204"
)
