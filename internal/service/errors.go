package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cramr/cramr-backend/internal/repository"
)

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrBlocked            = errors.New("blocked")
	ErrSelfAction         = errors.New("self action not allowed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid or expired code")
)

// Error carries a user-facing message together with one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// SignupConflictError lists every unique field that is already taken.
type SignupConflictError struct {
	Errors []string
}

func (e *SignupConflictError) Error() string { return strings.Join(e.Errors, "; ") }

func (e *SignupConflictError) Unwrap() error { return ErrConflict }

// fromRepo turns repository sentinels into service errors that name what was
// being looked up. Other errors pass through untouched.
func fromRepo(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "%s not found", what)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, "%s already exists", what)
	case errors.Is(err, repository.ErrCapacityReached):
		return newError(ErrConflict, "event is at capacity")
	}
	return err
}
