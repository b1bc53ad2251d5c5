// Package apperror defines the error kinds returned by the memory services.
//
// Every error a service returns is an *Error whose Kind is one of the sentinels
// below, so callers branch with errors.Is(err, apperror.ErrNotFound).
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both missing entities and entities owned by another tenant.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a uniqueness violation, e.g. a duplicate collection name.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument reports input that would leave an entity in an undefined state.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDependencyFailure reports a failed or malformed embedding provider response.
	ErrDependencyFailure = errors.New("dependency failure")
	// ErrStoreFailure reports any other storage error.
	ErrStoreFailure = errors.New("store failure")
)

type Error struct {
	Kind   error
	Op     string
	Entity string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Entity != "" {
		msg = e.Entity + " " + msg
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func NotFound(op, entity string) error {
	return &Error{Kind: ErrNotFound, Op: op, Entity: entity}
}

func AlreadyExists(op, entity string, err error) error {
	return &Error{Kind: ErrAlreadyExists, Op: op, Entity: entity, Err: err}
}

func InvalidArgument(op string, err error) error {
	return &Error{Kind: ErrInvalidArgument, Op: op, Err: err}
}

func DependencyFailure(op string, err error) error {
	return &Error{Kind: ErrDependencyFailure, Op: op, Err: err}
}

func StoreFailure(op, entity string, err error) error {
	return &Error{Kind: ErrStoreFailure, Op: op, Entity: entity, Err: err}
}

// KindOf returns the kind sentinel of err, or nil when err is not an *Error.
func KindOf(err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return nil
}
