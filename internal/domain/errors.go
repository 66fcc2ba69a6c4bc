package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a form, field or response id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned for bad credentials or a missing session.
	ErrUnauthorized = errors.New("unauthorized")
)

// Problem describes one invalid input. Field is a field id or attribute name,
// empty for form-level problems.
type Problem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError collects the problems found in one input.
type ValidationError struct {
	Problems []Problem
}

// Invalid builds a ValidationError with a single problem.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Problems: []Problem{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}

// Add appends a problem.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Problems = append(e.Problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
}

// OrNil returns e when it holds problems, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		if p.Field != "" {
			msgs[i] = p.Field + ": " + p.Message
		} else {
			msgs[i] = p.Message
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// GatewayError reports a failed persistence call.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway wraps err as a GatewayError for op. Nil stays nil, and errors that
// already carry a domain meaning (not found, validation, conflict) pass
// through unchanged so callers can still branch on them.
func Gateway(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return err
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		return err
	}
	return &GatewayError{Op: op, Err: err}
}
