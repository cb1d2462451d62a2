package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation           Kind = "ValidationError"
	KindInvalidBookingData   Kind = "InvalidBookingData"
	KindInvalidStatus        Kind = "InvalidStatus"
	KindDuplicateEmail       Kind = "DuplicateEmail"
	KindUnauthorized         Kind = "Unauthorized"
	KindInvalidCredentials   Kind = "InvalidCredentials"
	KindForbidden            Kind = "Forbidden"
	KindRegistrationDisabled Kind = "RegistrationDisabled"
	KindNotFound             Kind = "NotFound"
	KindMethodNotAllowed     Kind = "MethodNotAllowed"
	KindConflict             Kind = "Conflict"
	KindInternal             Kind = "InternalError"
)

// FieldError points a client at the offending input.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(kind Kind, message string, fields []FieldError) *Error {
	return &Error{Kind: kind, Message: message, Fields: fields}
}

func NotFound(what string) *Error {
	return New(KindNotFound, what+" not found")
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidBookingData, KindInvalidStatus, KindDuplicateEmail:
		return http.StatusBadRequest
	case KindUnauthorized, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden, KindRegistrationDisabled:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
