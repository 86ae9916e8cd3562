package tracker

import "errors"

// Errors returned by Service. They are wrapped with detail, so compare with
// errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNotFound            = errors.New("not found")
)
