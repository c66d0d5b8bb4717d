package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("insufficient privileges: admin access required")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrAlreadyExists       = errors.New("already exists")
)

// UpstreamError wraps a document store, object store, or external API failure. It
// matches ErrUpstreamUnavailable and unwraps to the cause.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// Upstream wraps err as an UpstreamError unless it is nil or already carries a domain kind.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrUpstreamUnavailable) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

type forbiddenError string

func (e forbiddenError) Error() string        { return string(e) }
func (e forbiddenError) Is(target error) bool { return target == ErrForbidden }

// Forbidden matches ErrForbidden but reports reason instead of the admin message.
func Forbidden(reason string) error {
	return forbiddenError(reason)
}
