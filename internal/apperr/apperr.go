// Package apperr defines the closed set of application error codes and
// the single mapping from codes to HTTP statuses and user-facing messages.
package apperr

import (
	"errors"
	"net/http"
)

// Code is an application error code.
type Code string

const (
	// MissingTitle indicates a note payload without a title.
	MissingTitle Code = "missing_title"
	// MalformedID indicates an identifier that is not well-formed.
	MalformedID Code = "malformed_id"
	// InvalidFolder indicates a folder reference that does not resolve
	// under the requesting owner.
	InvalidFolder Code = "invalid_folder"
	// InvalidTag indicates one or more tag references that do not resolve
	// under the requesting owner.
	InvalidTag Code = "invalid_tag"
	// InvalidArgument indicates a malformed or incomplete request payload.
	InvalidArgument Code = "invalid_argument"
	// AlreadyExists indicates a uniqueness constraint violation.
	AlreadyExists Code = "already_exists"
	// Unauthorized indicates missing or failed authentication.
	Unauthorized Code = "unauthorized"
	// NotFound indicates the requested record does not exist for this owner.
	NotFound Code = "not_found"
	// Internal is the opaque fallback for lower-layer faults.
	Internal Code = "internal"
)

// Error is a coded application error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same code, so the canonical
// errors below work with errors.Is.
func (e *Error) Is(target error) bool {
	var coded *Error
	if !errors.As(target, &coded) {
		return false
	}
	return e.Code == coded.Code
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{Code: code, Message: message, Err: cause}
}

// Canonical errors. Services return these so the boundary messages stay
// identical across the create and update paths.
var (
	ErrMissingTitle  = New(MissingTitle, "Missing `title` in request body")
	ErrMalformedID   = New(MalformedID, "The `id` is not valid")
	ErrInvalidFolder = New(InvalidFolder, "The folder is not valid")
	ErrInvalidTag    = New(InvalidTag, "The tag is not valid")
	ErrNotFound      = New(NotFound, "Not Found")
)

// CodeOf returns the error code, defaulting to Internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// MessageOf returns a user-facing error message. Errors without a typed
// wrapper yield an opaque message so raw store errors never leak to clients.
func MessageOf(err error) string {
	if err == nil {
		return "internal error"
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}

// HTTPStatus maps an error code to an HTTP status.
func HTTPStatus(code Code) int {
	switch code {
	case MissingTitle, MalformedID, InvalidFolder, InvalidTag, InvalidArgument, AlreadyExists:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
