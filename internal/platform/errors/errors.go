// Package errors is the access layer error taxonomy
//
// Import it as perr. Every failure a handler can see is an *Error carrying
// one ErrorCode; the net layer maps that code to a status and a wire body
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure. Values go over the wire, append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	// ErrorCodeConflict covers terminal state, soft deleted rows and stale versions
	ErrorCodeConflict
	// ErrorCodeUnauthorized means the caller has no usable credential
	ErrorCodeUnauthorized
	// ErrorCodeForbidden means a valid credential lacking role, enrollment or scope
	ErrorCodeForbidden
	// ErrorCodeInvalidArgument is a reference the store rejected (FK violation)
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	// ErrorCodeNotFound covers missing, soft deleted and out of scope rows
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
)

type codeInfo struct {
	label  string
	status int
}

var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeUnauthorized:    {"authentication", http.StatusUnauthorized},
	ErrorCodeForbidden:       {"authorization", http.StatusForbidden},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
}

// String is the lowercase label used in logs and metrics
func (c ErrorCode) String() string {
	if ci, ok := codes[c]; ok {
		return ci.label
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Status is the HTTP status for c; unmapped codes are 500
func (c ErrorCode) Status() int {
	if ci, ok := codes[c]; ok {
		return ci.status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by store helpers when no row matched
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a machine code, a caller facing message, an optional
// offending field and the wrapped cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

// Wire is the JSON body of an error response
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.msg
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, empty when not field specific
func (e *Error) Field() string { return e.field }

// Wire drops the cause; only the message and field reach the caller
func (e *Error) Wire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom renders any error. Foreign errors are masked as internal
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.Wire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: "internal error"}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code, Unknown for foreign or nil errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err classifies as code
func IsCode(err error, code ErrorCode) bool { return err != nil && CodeOf(err) == code }

// HTTPStatus is the response status for err
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WithField returns a copy of err tagged with field; foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	cp.field = field
	return &cp
}

// New builds an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Wrap builds an *Error around cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func newf(code ErrorCode, format string, a []any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Authenticationf is a credential failure; the caller must re-authenticate
func Authenticationf(format string, a ...any) error { return newf(ErrorCodeUnauthorized, format, a) }

// Authorizationf is a permission failure for a valid credential
func Authorizationf(format string, a ...any) error { return newf(ErrorCodeForbidden, format, a) }

func NotFoundf(format string, a ...any) error    { return newf(ErrorCodeNotFound, format, a) }
func Validationf(format string, a ...any) error  { return newf(ErrorCodeValidation, format, a) }
func Conflictf(format string, a ...any) error    { return newf(ErrorCodeConflict, format, a) }
func JSONErrf(format string, a ...any) error     { return newf(ErrorCodeJSON, format, a) }
func PanicErrf(format string, a ...any) error    { return newf(ErrorCodePanic, format, a) }
func Unavailablef(format string, a ...any) error { return newf(ErrorCodeUnavailable, format, a) }

// FieldValidationf is a validation error tagged with the offending field
func FieldValidationf(field, format string, a ...any) error {
	return WithField(newf(ErrorCodeValidation, format, a), field)
}
