// Package errs holds the domain error taxonomy shared by the use cases and the
// HTTP error middleware.
package errs

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeConflict       Type = "CONFLICT"
	TypeNotFound       Type = "NOT_FOUND"
	TypeInternal       Type = "INTERNAL"
)

// DomainError is safe to show to a caller through Message and Fields only;
// Err and Stack are for logs.
type DomainError struct {
	Type    Type
	Message string
	Fields  map[string]string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType Type, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		var stackErr *goerrors.Error
		if errors.As(err, &stackErr) {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, fields map[string]string) *DomainError {
	e := New(TypeValidation, message, nil)
	e.Fields = fields
	return e
}

func Authentication(message string, err error) *DomainError {
	return New(TypeAuthentication, message, err)
}

func Authorization(message string, err error) *DomainError {
	return New(TypeAuthorization, message, err)
}

func Conflict(message string, err error) *DomainError {
	return New(TypeConflict, message, err)
}

func NotFound(message string, err error) *DomainError {
	return New(TypeNotFound, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(TypeInternal, message, err)
}

// TypeOf reports the Type of the first DomainError in err's chain, or
// TypeInternal when there is none.
func TypeOf(err error) Type {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type
	}
	return TypeInternal
}

func Is(err error, t Type) bool {
	if err == nil {
		return false
	}
	return TypeOf(err) == t
}
