package models

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the transport layer can map it to
// a status code without inspecting message text.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity.
func NotFoundError(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// UnauthorizedError reports a missing or invalid credential.
func UnauthorizedError(format string, args ...any) *Error {
	return newError(KindUnauthorized, format, args...)
}

// ForbiddenError reports a denied action for an authenticated caller.
func ForbiddenError(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

// ValidationError reports malformed or incomplete input.
func ValidationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// ConflictError reports a uniqueness or state conflict.
func ConflictError(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf extracts the classification of err, or "" for plain errors.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}
