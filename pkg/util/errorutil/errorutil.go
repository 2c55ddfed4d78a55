package errorutil

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// InternalErrorCode is the code used for errors that do not belong to the taxonomy.
const InternalErrorCode = "internal"

// Kind is the closed set of domain failure categories.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindIllegalArgument
	KindUnauthorized
	KindUnprocessableEntity
	KindStorageFailure
	KindValidation
	KindServiceFailure
)

var kindNames = map[Kind]string{
	KindInternal:            "internal",
	KindNotFound:            "not_found",
	KindIllegalArgument:     "illegal_argument",
	KindUnauthorized:        "unauthorized",
	KindUnprocessableEntity: "unprocessable_entity",
	KindStorageFailure:      "storage_failure",
	KindValidation:          "validation",
	KindServiceFailure:      "service_failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// DomainError standardizes application errors.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Args    map[string]string
	Err     error
}

// Classified is implemented by errors that can present themselves as a DomainError.
type Classified interface {
	DomainError() *DomainError
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError of the same kind and code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// DomainError returns a copy of the error so callers cannot mutate the original.
func (e *DomainError) DomainError() *DomainError {
	return e.clone()
}

// WithArgs returns a copy carrying the given named arguments.
func (e *DomainError) WithArgs(args map[string]string) *DomainError {
	out := e.clone()
	out.Args = maps.Clone(args)
	return out
}

// WithCause returns a copy chained to cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	out := e.clone()
	out.Err = cause
	return out
}

// HTTPStatus returns the transport status for the error's kind.
func (e *DomainError) HTTPStatus() int {
	return HTTPStatus(e.Kind)
}

func (e *DomainError) clone() *DomainError {
	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Args:    maps.Clone(e.Args),
		Err:     e.Err,
	}
}

// New constructs a DomainError.
func New(kind Kind, code, message string) *DomainError {
	if code == "" {
		code = InternalErrorCode
	}
	return &DomainError{Kind: kind, Code: code, Message: message}
}

func NewNotFound(code, message string) *DomainError {
	return New(KindNotFound, code, message)
}

func NewIllegalArgument(code, message string) *DomainError {
	return New(KindIllegalArgument, code, message)
}

func NewUnauthorized(code, message string) *DomainError {
	return New(KindUnauthorized, code, message)
}

func NewUnprocessableEntity(code, message string) *DomainError {
	return New(KindUnprocessableEntity, code, message)
}

func NewValidation(code, message string) *DomainError {
	return New(KindValidation, code, message)
}

func NewServiceFailure(code, message string) *DomainError {
	return New(KindServiceFailure, code, message)
}

// NewStorageFailure wraps a persistence error.
func NewStorageFailure(err error) *DomainError {
	return New(KindStorageFailure, "storage-failure", "database error").WithCause(err)
}

func NewInternalError(err error) *DomainError {
	return New(KindInternal, InternalErrorCode, "internal error").WithCause(err)
}

// ToDomainError converts any error into a DomainError. It never fails.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var classified Classified
	if errors.As(err, &classified) {
		if de := classified.DomainError(); de != nil {
			return de
		}
	}
	return NewInternalError(err)
}

// IsKind reports whether err converts to a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	de := ToDomainError(err)
	return de != nil && de.Kind == kind
}

// HTTPStatus maps a kind to its transport status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindIllegalArgument, KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
