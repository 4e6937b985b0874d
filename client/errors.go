package client

import (
	"errors"
	"fmt"
)

// Kinds of infrastructure error. An InfrastructureError matches its kind with errors.Is.
var (
	ErrTimeout           = errors.New("request timed out")
	ErrNetwork           = errors.New("network failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrPrecondition      = errors.New("precondition failed")
	ErrInvalidRequest    = errors.New("invalid request")
)

// InfrastructureError means the service could not be exercised: it was unreachable, too slow, or
// answered with something that could not be decoded. It is never an assertion failure.
type InfrastructureError struct {
	Kind    error
	Request string // "METHOD URL"
	Err     error
}

func (e *InfrastructureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Request, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Request, e.Kind, e.Err)
}

func (e *InfrastructureError) Is(target error) bool {
	return target == e.Kind
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}
