package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch signals a structurally wrong argument (wrong shape, not wrong content).
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidParameter signals a field-level or cross-field validation failure.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnsupported signals a request that the target backend cannot express.
	ErrUnsupported = errors.New("unsupported")
)

// ParamError wraps ErrInvalidParameter with the offending field.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidParameter.Error(), e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", ErrInvalidParameter.Error(), e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// NewParamError creates an invalid parameter error for field.
func NewParamError(field, format string, args ...any) error {
	return &ParamError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TypeError wraps ErrTypeMismatch with the expected and actual argument types.
type TypeError struct {
	Param string
	Want  string
	Got   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s: expect %s but got %s instead", ErrTypeMismatch.Error(), e.Param, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error { return ErrTypeMismatch }

// NewTypeError creates a type mismatch error for param.
func NewTypeError(param, want string, got any) error {
	return &TypeError{Param: param, Want: want, Got: fmt.Sprintf("%T", got)}
}
