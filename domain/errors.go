package domain

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies a rule violation. The HTTP layer maps kinds to status codes.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindBadRequest     Kind = "bad_request"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
)

// Sentinel errors, usable with errors.Is against any *Error of the same kind.
var (
	ErrValidation     = errors.New("validation failed")
	ErrBadRequest     = errors.New("bad request")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("not the owner")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
)

var kindSentinels = map[Kind]error{
	KindValidation:     ErrValidation,
	KindBadRequest:     ErrBadRequest,
	KindAuthentication: ErrAuthentication,
	KindAuthorization:  ErrAuthorization,
	KindNotFound:       ErrNotFound,
	KindConflict:       ErrConflict,
}

// FieldError is one entry of the error list returned to clients.
// Attr is nil for errors that are not tied to a request field.
type FieldError struct {
	Code   string  `json:"code"`
	Detail string  `json:"detail"`
	Attr   *string `json:"attr"`
}

// Error is a rule violation raised where it is detected and surfaced to the caller as-is.
type Error struct {
	Kind   Kind
	Fields []FieldError
}

func (e *Error) Error() string {
	details := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Attr != nil {
			details = append(details, *f.Attr+": "+f.Detail)
			continue
		}
		details = append(details, f.Detail)
	}
	return string(e.Kind) + ": " + strings.Join(details, "; ")
}

// Is lets errors.Is match the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// StatusCode maps the kind to an HTTP status.
// Ownership and conflict violations render 400, as existing clients expect.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindBadRequest, KindAuthorization, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Type is the top-level "type" of the rendered error body.
func (e *Error) Type() string {
	switch e.Kind {
	case KindValidation:
		return "validation_error"
	case KindInternal:
		return "server_error"
	default:
		return "client_error"
	}
}

func newError(kind Kind, code, detail string, attr *string) *Error {
	return &Error{Kind: kind, Fields: []FieldError{{Code: code, Detail: detail, Attr: attr}}}
}

func Validation(detail string) *Error {
	return newError(KindValidation, "invalid", detail, nil)
}

// FieldValidation attributes a validation failure to a request field.
func FieldValidation(attr, code, detail string) *Error {
	return newError(KindValidation, code, detail, &attr)
}

func BadRequest(detail string) *Error {
	return newError(KindBadRequest, "bad_request", detail, nil)
}

func Authentication(detail string) *Error {
	return newError(KindAuthentication, "authentication_failed", detail, nil)
}

func Authorization(detail string) *Error {
	return newError(KindAuthorization, "permission_denied", detail, nil)
}

func NotFound(detail string) *Error {
	return newError(KindNotFound, "not_found", detail, nil)
}

func Conflict(detail string) *Error {
	return newError(KindConflict, "conflict", detail, nil)
}

// FieldConflict is a uniqueness violation on a single field, e.g. a taken email.
// It is reported as a validation error so clients see it next to other field errors.
func FieldConflict(attr, detail string) *Error {
	return newError(KindValidation, "unique", detail, &attr)
}

func Internal() *Error {
	return newError(KindInternal, "error", "A server error occurred.", nil)
}

// Merge concatenates field errors of several *Error values into one of the first error's kind.
// nil entries are skipped; returns nil when nothing is left.
func Merge(errs ...*Error) *Error {
	var merged *Error
	for _, e := range errs {
		if e == nil {
			continue
		}
		if merged == nil {
			merged = &Error{Kind: e.Kind}
		}
		merged.Fields = append(merged.Fields, e.Fields...)
	}
	return merged
}

// As extracts a *Error from err, or nil.
func As(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}
