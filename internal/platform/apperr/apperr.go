// Package apperr define el conjunto cerrado de errores de dominio
// (NotFound, ValidationFailed, ConstraintViolated, Unexpected).
// La traducción a HTTP vive en platform/httpx.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindValidation
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	case KindConstraint:
		return "constraint_violated"
	default:
		return "unexpected"
	}
}

// FieldError describe un problema puntual en un campo del payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

// Sentinels para errors.Is (comparan solo el Kind).
var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrValidation = &Error{Kind: KindValidation}
	ErrConstraint = &Error{Kind: KindConstraint}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

func NotFound(entity string, key any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, key)}
}

func Invalid(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Duplicate es una violación de unicidad: se informa como dato inválido
// con el campo repetido en Fields.
func Duplicate(msg string, err error, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err, Fields: fields}
}

func Conflict(msg string, err error, fields ...FieldError) *Error {
	return &Error{Kind: KindConstraint, Message: msg, Err: err, Fields: fields}
}

// Unexpected envuelve un error de infraestructura con la operación que falló.
func Unexpected(op string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: op, Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena; cualquier otro error es Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// As devuelve el *Error de la cadena si existe.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
