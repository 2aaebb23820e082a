// Package apperror berisi error domain yang dipakai service layer.
// Controller memetakan Kind ke HTTP status lewat helper.FromError.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidArgument  Kind = "INVALID_ARGUMENT"
	KindNotFound         Kind = "NOT_FOUND"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindInvalidState     Kind = "INVALID_STATE"
	KindDuplicateCheckIn Kind = "DUPLICATE_CHECK_IN"
	KindConflict         Kind = "CONFLICT"
)

// Sentinel per kind, dipakai untuk errors.Is.
var (
	ErrInvalidArgument  = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "not allowed"}
	ErrInvalidState     = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrDuplicateCheckIn = &Error{Kind: KindDuplicateCheckIn, Message: "already checked in for this period"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "conflict"}
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is membuat errors.Is(err, ErrNotFound) true untuk semua error dengan Kind yang sama.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) error { return newf(KindInvalidArgument, format, args...) }
func NotFound(format string, args ...any) error        { return newf(KindNotFound, format, args...) }
func Unauthorized(format string, args ...any) error    { return newf(KindUnauthorized, format, args...) }
func InvalidState(format string, args ...any) error    { return newf(KindInvalidState, format, args...) }
func Conflict(format string, args ...any) error        { return newf(KindConflict, format, args...) }

func DuplicateCheckIn(format string, args ...any) error {
	return newf(KindDuplicateCheckIn, format, args...)
}

// Wrap menempelkan cause ke error domain baru.
func Wrap(kind Kind, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf mengembalikan Kind dari rantai error, "" kalau bukan error domain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
